// Package process terminates browser process trees launched by the chrome engine.
package process
