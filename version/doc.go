// Package version reports the build version of the module, used for the
// client's User-Agent and the webhook receiver's health endpoint.
//
//	go build -ldflags "-X github.com/kbukum/elevenlabs-stt/version.Version=v1.0.0"
package version
