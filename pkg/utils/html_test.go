package utils

import "testing"

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"simple markup",
			"<html><body><p>Flight AI302</p><p>DEL to BOM</p></body></html>",
			"Flight AI302 DEL to BOM",
		},
		{
			"style and script dropped",
			"<style>.x{color:red}</style><script>var x=1;</script><div>PNR: XY123Z</div>",
			"PNR: XY123Z",
		},
		{
			"whitespace collapsed",
			"<td>  DEL </td>\n<td>\tBOM  </td>",
			"DEL BOM",
		},
		{
			"plain text passes through",
			"no markup at all",
			"no markup at all",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToText(tt.html); got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}
