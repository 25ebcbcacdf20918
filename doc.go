// Package wavedit is an offline editor for stereo 16-bit PCM audio. It
// transforms sequences of sample pairs (reverse, speed changes, volume
// scaling and a 3-tap smoothing filter) and synthesizes new audio from note
// scripts such as "A 16 Q 4 C 8".
//
// All transforms are pure: they return a new Sequence and never modify their
// input. File formats and playback live in the sub-packages.
package wavedit
