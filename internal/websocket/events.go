package websocket

import "encoding/json"

// Speaker identifies who an event is attributed to on the wire.
type Speaker string

const (
	SpeakerAssistant Speaker = "assistant"
	SpeakerUser      Speaker = "user"
	SpeakerError     Speaker = "error"
)

// Event is the server-to-client wire message.
type Event struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// instructionMessage is the client-to-server control message. Any frame that
// does not decode into this shape is treated as an audio payload.
type instructionMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Fixed wire texts.
const (
	welcomeText          = "Welcome to the English conversation practice! Press 'Record' to start speaking."
	audioPlaceholderText = "[Audio Sent]"
	errorText            = "An error occurred."
)

// decodeInstruction reports whether a text frame carries an instruction
// message: a JSON object with a string "type" field. Frames that fail JSON
// decode, or decode to something other than such an object, are audio.
// Whether the type names a recognized instruction is the session's call.
func decodeInstruction(data []byte) (instructionMessage, bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return instructionMessage{}, false
	}

	kind, ok := raw["type"].(string)
	if !ok {
		return instructionMessage{}, false
	}

	text, _ := raw["text"].(string)
	return instructionMessage{Type: kind, Text: text}, true
}
