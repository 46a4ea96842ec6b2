package plan

import (
	"strconv"
	"strings"
)

// Mode selects between constant-bitrate and variable-bitrate encoding.
type Mode string

const (
	ModeCBR Mode = "cbr"
	ModeVBR Mode = "vbr"
)

// VBR quality bounds. 0 is best, 5 is worst.
const (
	QualityMin = 0
	QualityMax = 5
)

// EncodingParams is the resolved set of output encoding parameters. Exactly
// one of Bitrate and Quality is meaningful, selected by Mode. SampleRate 0
// means the encoder inherits the first input's sample rate.
type EncodingParams struct {
	Mode       Mode
	Bitrate    string
	Quality    int
	SampleRate int
}

// Overrides carries explicit user choices. The zero value means nothing is
// set: SampleRate 0 and an empty Bitrate mean unset, and quality counts as
// set only after SetQuality.
type Overrides struct {
	VBR        bool
	Bitrate    string
	SampleRate int

	quality    int
	qualitySet bool
}

// SetQuality records an explicit VBR quality choice. Explicit values are
// range-checked by ResolveParams even when CBR mode would ignore them.
func (o *Overrides) SetQuality(quality int) {
	o.quality = quality
	o.qualitySet = true
}

// ResolveParams turns the first input's probed bitrate and the user's
// overrides into final encoding parameters. An explicit bitrate or quality
// skips estimation entirely; otherwise the source bitrate picks a tier.
// A source bitrate of 0 (unknown) lands on the lowest tier.
func ResolveParams(sourceBitrate int64, ov Overrides) (EncodingParams, error) {
	if ov.qualitySet && (ov.quality < QualityMin || ov.quality > QualityMax) {
		return EncodingParams{}, &InvalidParameterError{
			Name:  "quality",
			Value: strconv.Itoa(ov.quality),
			Valid: "0-5",
		}
	}

	params := EncodingParams{SampleRate: ov.SampleRate, Quality: -1}

	if ov.VBR {
		params.Mode = ModeVBR
		if ov.qualitySet {
			params.Quality = ov.quality
		} else {
			params.Quality = estimateQuality(sourceBitrate)
		}
		return params, nil
	}

	params.Mode = ModeCBR
	bitrate := strings.TrimSpace(ov.Bitrate)
	if bitrate == "" {
		bitrate = estimateBitrate(sourceBitrate)
	}
	params.Bitrate = bitrate
	return params, nil
}

// estimateBitrate maps the source bitrate to a CBR target no larger than the
// source implies. Highest matching tier wins.
func estimateBitrate(bps int64) string {
	switch {
	case bps >= 256000:
		return "256k"
	case bps >= 192000:
		return "192k"
	case bps >= 128000:
		return "128k"
	case bps >= 96000:
		return "96k"
	case bps >= 64000:
		return "64k"
	default:
		return "48k"
	}
}

// estimateQuality maps the source bitrate to a VBR quality level. Higher
// source bitrates map to lower (better) quality numbers.
func estimateQuality(bps int64) int {
	switch {
	case bps >= 256000:
		return 0
	case bps >= 192000:
		return 1
	case bps >= 128000:
		return 2
	case bps >= 96000:
		return 3
	case bps >= 64000:
		return 4
	default:
		return 5
	}
}
