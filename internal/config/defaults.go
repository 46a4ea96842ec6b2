package config

// DefaultChapterThreshold is the part count at which generated chapter names
// switch from "Part" to "Chapter".
const DefaultChapterThreshold = 6

// DefaultMetadataTags lists the tags carried from input files into the
// combined output when no allow-list is configured.
var DefaultMetadataTags = []string{
	"title",
	"artist",
	"album",
	"album_artist",
	"composer",
	"narrator",
	"genre",
	"date",
	"comment",
	"copyright",
	"publisher",
	"track",
}

// Default returns the baseline configuration used when no file is present.
func Default() Config {
	tags := make([]string, len(DefaultMetadataTags))
	copy(tags, DefaultMetadataTags)

	return Config{
		Paths: Paths{
			StagingDir: "~/.cache/bookbind/staging",
			LogDir:     "~/.local/share/bookbind/logs",
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Combine: Combine{
			ChapterThreshold: DefaultChapterThreshold,
			VBR:              false,
			MetadataTags:     tags,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
