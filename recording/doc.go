// Package recording captures processed pipeline frames to a compact stream
// for offline inspection and playback.
//
// The stream is a magic header followed by length-prefixed frames; each
// frame's RGBA payload is zstd-compressed. Because dithered frames hold only
// a handful of distinct byte values per channel they compress extremely
// well.
//
// Recording is an explicit opt-in tool; the pipeline itself never persists
// frame data.
package recording
