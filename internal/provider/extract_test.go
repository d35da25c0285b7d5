package provider

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"level":"A2"}`, `{"level":"A2"}`},
		{"fenced", "```json\n{\"level\":\"A2\"}\n```", `{"level":"A2"}`},
		{"fence without language", "```\n[1,2,3]\n```", `[1,2,3]`},
		{"prose around object", `Sure! Here is the test: {"level":"A1"} Hope it helps.`, `{"level":"A1"}`},
		{"nested braces", `note {"a":{"b":1}} end`, `{"a":{"b":1}}`},
		{"array with prose", `The items are [ {"id":"q1"} ] as requested.`, `[ {"id":"q1"} ]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			if err != nil {
				t.Fatalf("ExtractJSON(%q): %v", tc.in, err)
			}
			if string(got) != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			var probe any
			if err := json.Unmarshal(got, &probe); err != nil {
				t.Errorf("result does not parse: %v", err)
			}
		})
	}
}

func TestExtractJSONBadPayload(t *testing.T) {
	for _, in := range []string{
		"",
		"I could not generate the test, sorry.",
		"{broken",
		"```json\nnot json at all\n```",
	} {
		if _, err := ExtractJSON(in); !errors.Is(err, ErrBadPayload) {
			t.Errorf("ExtractJSON(%q) err = %v, want ErrBadPayload", in, err)
		}
	}
}
