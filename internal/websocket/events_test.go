package websocket

import "testing"

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		ok       bool
		wantKind string
		wantText string
	}{
		{
			name:     "guideline instruction",
			data:     `{"type":"guideline","text":"be gentle"}`,
			ok:       true,
			wantKind: "guideline",
			wantText: "be gentle",
		},
		{
			name:     "repeat instruction",
			data:     `{"type":"repeat","text":"3"}`,
			ok:       true,
			wantKind: "repeat",
			wantText: "3",
		},
		{
			name:     "unrecognized type still decodes",
			data:     `{"type":"volume","text":"11"}`,
			ok:       true,
			wantKind: "volume",
		},
		{
			name:     "missing text field",
			data:     `{"type":"topic"}`,
			ok:       true,
			wantKind: "topic",
			wantText: "",
		},
		{
			name: "not json",
			data: "\x00\x01raw audio bytes",
			ok:   false,
		},
		{
			name: "json string",
			data: `"hello"`,
			ok:   false,
		},
		{
			name: "json null",
			data: `null`,
			ok:   false,
		},
		{
			name: "json array",
			data: `[1,2,3]`,
			ok:   false,
		},
		{
			name: "object without type",
			data: `{"text":"no type here"}`,
			ok:   false,
		},
		{
			name: "non-string type",
			data: `{"type":42}`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr, ok := decodeInstruction([]byte(tt.data))
			if ok != tt.ok {
				t.Fatalf("decodeInstruction() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if instr.Type != tt.wantKind {
				t.Errorf("Type = %q, want %q", instr.Type, tt.wantKind)
			}
			if instr.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", instr.Text, tt.wantText)
			}
		})
	}
}
