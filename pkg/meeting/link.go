package meeting

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the room URL template used when none is configured.
const DefaultBaseURL = "https://meet.jit.si/%s"

// Generator produces meeting-room URLs for virtual consultations. Each call
// embeds a freshly generated random room identifier into the base template;
// stability of a link over the lifetime of a consultation is the caller's
// responsibility (assign once, never regenerate).
type Generator struct {
	baseURL string
}

// NewGenerator accepts a URL template with exactly one %s placeholder for
// the room identifier. Anything else falls back to the default template.
func NewGenerator(baseURL string) *Generator {
	if strings.Count(baseURL, "%s") != 1 || strings.Count(baseURL, "%") != 1 {
		baseURL = DefaultBaseURL
	}
	return &Generator{baseURL: baseURL}
}

// NewRoomLink returns a URL with a random 32-character hex room identifier.
func (g *Generator) NewRoomLink() string {
	roomID := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf(g.baseURL, roomID)
}
