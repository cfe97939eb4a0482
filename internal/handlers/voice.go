package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/creative"
	"github.com/fagame/backend/internal/services"
)

// Voice prompts are a few seconds of audio; anything bigger is rejected
// before it reaches the recognizer.
const maxVoiceUploadBytes = 5 << 20

var errAudioTooLarge = errors.New("audio upload exceeds 5MB")

type VoiceHandler struct {
	speechService services.SpeechService
}

func NewVoiceHandler(speechService services.SpeechService) *VoiceHandler {
	return &VoiceHandler{speechService: speechService}
}

// Transcribe accepts a multipart "audio" file and returns its transcript plus
// the creative interpretation of it, so the client can show what the child's
// words selected without a second round trip.
func (vh *VoiceHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxVoiceUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(audio) > maxVoiceUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "audio_too_large", errAudioTooLarge)
		return
	}

	transcript, err := vh.speechService.TranscribeVoicePrompt(
		c.Request.Context(),
		audio,
		header.Header.Get("Content-Type"),
		c.PostForm("language"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"transcript": transcript,
		"selection":  creative.Interpret(transcript),
	})
}
