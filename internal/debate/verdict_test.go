package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWinner(t *testing.T) {
	cases := []struct {
		verdict string
		want    Side
		ok      bool
	}{
		{"**THE WINNER IS: PRO**\n\nDecisive framing control.", SidePro, true},
		{"THE WINNER IS: CON", SideCon, true},
		{"the winner is con, by a narrow margin", SideCon, true},
		{"## VERDICT\n\n**THE WINNER IS: [PRO]**", SidePro, true},
		{"Both sides argued well.", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseWinner(tc.verdict)
		assert.Equal(t, tc.ok, ok, tc.verdict)
		assert.Equal(t, tc.want, got, tc.verdict)
	}
}
