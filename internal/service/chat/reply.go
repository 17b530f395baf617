package chat

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
)

// stubReply produces the placeholder assistant answer for a chat's AI type.
// No model is called.
func stubReply(aiType, content string) string {
	switch aiType {
	case domain.AITypeTextToText:
		return fmt.Sprintf("This is the AI reply to %q.", content)
	case domain.AITypeTextToImage:
		return fmt.Sprintf("Generated an image for %q: /api/generated-images/%s.jpg", content, uuid.NewString())
	case domain.AITypeImageToText:
		return fmt.Sprintf("Image analysis: the picture shows content related to %s.", content)
	case domain.AITypeVoiceToText:
		return "Transcription: " + content
	case domain.AITypeTextToVoice:
		return fmt.Sprintf("Speech synthesis finished: /api/generated-audio/%s.mp3", uuid.NewString())
	case domain.AITypeFileAnalysis:
		return "File analysis summary: " + truncate(content, 100) + "..."
	}
	return "Received: " + content
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
