package optimizer

import (
	"github.com/abadojack/whatlanggo"

	"github.com/edgecomet/seotext/pkg/types"
)

// detectLanguage returns the ISO 639-1 code of the language text is written
// in and whether it disagrees with declared. Only reliable detections count
// as a mismatch.
func detectLanguage(text string, declared types.Language) (string, bool) {
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "", false
	}
	return code, info.IsReliable() && code != string(declared)
}
