// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MKhiriev/go-form-coach/internal/config"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
)

const (
	defaultRegion = "us-east-1"
	defaultVoice  = "Joanna"
)

var (
	// ErrSynthesisRejected is logged when Polly refuses the request itself.
	ErrSynthesisRejected = errors.New("synthesis rejected")
	// ErrSynthesisUnavailable is logged for throttling and server faults.
	ErrSynthesisUnavailable = errors.New("synthesis unavailable")
	// ErrEmptyAudio is logged when Polly returns no audio stream.
	ErrEmptyAudio = errors.New("synthesis returned no audio")
)

type synthClient interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Player consumes synthesised MP3 audio. Play must return when ctx is
// cancelled.
type Player interface {
	Play(ctx context.Context, audio io.Reader) error
}

// DiscardPlayer drains the audio without playing it.
type DiscardPlayer struct{}

func (DiscardPlayer) Play(ctx context.Context, audio io.Reader) error {
	_, err := io.Copy(io.Discard, audio)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// PollySpeaker synthesises utterances with Amazon Polly and hands the audio to
// a [Player]. At most one utterance is in flight per Speak/Cancel pair.
type PollySpeaker struct {
	client synthClient
	player Player
	voice  string
	engine pollytypes.Engine
	log    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPollySpeaker loads the default AWS configuration for cfg.Region and
// returns a Polly-backed speaker.
func NewPollySpeaker(cfg config.ClientSpeech, player Player, log *logger.Logger) (*PollySpeaker, error) {
	region := cfg.Region
	if strings.TrimSpace(region) == "" {
		region = defaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newPollySpeaker(polly.NewFromConfig(awsCfg), player, cfg, log), nil
}

func newPollySpeaker(client synthClient, player Player, cfg config.ClientSpeech, log *logger.Logger) *PollySpeaker {
	voice := cfg.VoiceID
	if strings.TrimSpace(voice) == "" {
		voice = defaultVoice
	}
	engine := pollytypes.EngineStandard
	if strings.EqualFold(cfg.Engine, "neural") {
		engine = pollytypes.EngineNeural
	}
	if player == nil {
		player = DiscardPlayer{}
	}

	return &PollySpeaker{
		client: client,
		player: player,
		voice:  voice,
		engine: engine,
		log:    log.Component("speech"),
	}
}

// Speak implements [Speaker].
func (s *PollySpeaker) Speak(u Utterance) error {
	if strings.TrimSpace(u.Text) == "" {
		return ErrEmptyText
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()

		if err := s.say(ctx, u); err != nil {
			if errors.Is(err, context.Canceled) {
				s.log.Debug().Str("text", u.Text).Msg("utterance cancelled")
				return
			}
			s.log.Error().Err(err).Str("text", u.Text).Msg("speech output failed")
		}
	}()

	return nil
}

// Cancel implements [Speaker].
func (s *PollySpeaker) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Close cancels the utterance in progress and waits for every background
// synthesis to return.
func (s *PollySpeaker) Close() {
	s.Cancel()
	s.wg.Wait()
}

func (s *PollySpeaker) say(ctx context.Context, u Utterance) error {
	input := &polly.SynthesizeSpeechInput{
		Engine:       s.engine,
		OutputFormat: pollytypes.OutputFormatMp3,
		Text:         aws.String(buildSSML(u, s.engine)),
		TextType:     pollytypes.TextTypeSsml,
		VoiceId:      pollytypes.VoiceId(s.voice),
	}
	if u.Locale != "" {
		input.LanguageCode = pollytypes.LanguageCode(u.Locale)
	}

	out, err := s.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return normalizePollyError(err)
	}
	if out == nil || out.AudioStream == nil {
		return ErrEmptyAudio
	}
	defer out.AudioStream.Close()

	return s.player.Play(ctx, out.AudioStream)
}

func normalizePollyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidSsmlException", "TextLengthExceededException", "LexiconNotFoundException",
			"MarksNotSupportedForFormatException", "InvalidSampleRateException",
			"LanguageNotSupportedException", "EngineNotSupportedException":
			return fmt.Errorf("%w: %s: %s", ErrSynthesisRejected, apiErr.ErrorCode(), apiErr.ErrorMessage())
		default:
			return fmt.Errorf("%w: %s: %s", ErrSynthesisUnavailable, apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
	}

	return fmt.Errorf("%w: %v", ErrSynthesisUnavailable, err)
}
