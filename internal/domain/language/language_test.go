package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		override string
		accept   string
		want     string
	}{
		{name: "first supported subtag in header order", accept: "fr-FR,fr;q=0.9,ja;q=0.8", want: Japanese},
		{name: "none supported", accept: "fr-FR,de;q=0.9", want: Korean},
		{name: "empty headers", want: Korean},
		{name: "override wins", override: "zh", accept: "en-US,en;q=0.9", want: Chinese},
		{name: "override with region", override: "en-GB", want: English},
		{name: "unsupported override falls through", override: "fr", accept: "ja-JP", want: Japanese},
		{name: "order beats weight", accept: "en;q=0.1,ko;q=0.9", want: English},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Resolve(tc.override, tc.accept))
		})
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, English, Normalize("EN"))
	require.Equal(t, Korean, Normalize("pt-BR"))
	require.Equal(t, Korean, Normalize(""))
}

func TestInstructionFallsBackToKorean(t *testing.T) {
	require.Equal(t, "Please respond in English.", Instruction(English))
	require.Equal(t, Instruction(Korean), Instruction("de"))
}

func TestMessageFallbacks(t *testing.T) {
	require.Equal(t, "Invalid request.", Message(MsgInvalidRequest, English))
	require.Equal(t, Message(MsgInvalidRequest, Korean), Message(MsgInvalidRequest, "fr"))
	require.Equal(t, Message(MsgSuccess, Korean), Message("unknown", English))
}
