// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-u websocket url of the analysis backend
//	-a REST collaborator address in format [host]:[port]
//	-c/-config json file path with configs
//	-log-path log file path
//	-base-delay first reconnect delay (e.g., "1s")
//	-max-attempts reconnect attempts before giving up
//	-dial-timeout connection attempt timeout (e.g., "10s")
//	-request-timeout REST request timeout (e.g., "10s")
//	-speech-provider polly or log
//	-voice polly voice id
//	-locale spoken locale (e.g., "en-US")
//	-mute-server-voice do not speak backend voice messages
//	-mqtt-broker telemetry broker url
//	-user user id of the session to start
//	-exercises comma separated exercise plan
//	-target-reps reps per set
//	-target-sets sets per exercise
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("coach", flag.ContinueOnError)

	var adapterAddress NetAddress
	var channelURL string
	var jsonConfigPath string
	var logPath string
	var baseDelay, dialTimeout, requestTimeout time.Duration
	var maxAttempts int
	var speechProvider, voiceID, locale string
	var muteServerVoice bool
	var broker string
	var userID, exercises string
	var targetReps, targetSets int

	fs.StringVar(&channelURL, "u", "", "Websocket URL of the analysis backend")
	fs.Var(&adapterAddress, "a", "REST address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logPath, "log-path", "", "Log file path")
	fs.DurationVar(&baseDelay, "base-delay", 0, "First reconnect delay (e.g., 1s)")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Reconnect attempts before giving up")
	fs.DurationVar(&dialTimeout, "dial-timeout", 0, "Connection attempt timeout (e.g., 10s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "REST request timeout (e.g., 10s)")
	fs.StringVar(&speechProvider, "speech-provider", "", "Speech provider: polly or log")
	fs.StringVar(&voiceID, "voice", "", "Polly voice id")
	fs.StringVar(&locale, "locale", "", "Spoken locale (e.g., en-US)")
	fs.BoolVar(&muteServerVoice, "mute-server-voice", false, "Do not speak backend voice messages")
	fs.StringVar(&broker, "mqtt-broker", "", "Telemetry MQTT broker URL")
	fs.StringVar(&userID, "user", "", "User id of the session to start")
	fs.StringVar(&exercises, "exercises", "", "Comma separated exercise plan")
	fs.IntVar(&targetReps, "target-reps", 0, "Reps per set")
	fs.IntVar(&targetSets, "target-sets", 0, "Sets per exercise")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{LogPath: logPath},
		Channel: Channel{
			URL:         channelURL,
			BaseDelay:   baseDelay,
			MaxAttempts: maxAttempts,
			DialTimeout: dialTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Speech: Speech{
			Provider:        speechProvider,
			VoiceID:         voiceID,
			Locale:          locale,
			MuteServerVoice: muteServerVoice,
		},
		Telemetry: Telemetry{Broker: broker},
		Session: Session{
			UserID:     userID,
			Exercises:  splitList(exercises),
			TargetReps: targetReps,
			TargetSets: targetSets,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
