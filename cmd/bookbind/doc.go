// Command bookbind combines numbered audiobook part files into a single
// chapterized m4b, planning chapter offsets, encoding parameters, and merged
// metadata before handing the work to ffmpeg.
package main
