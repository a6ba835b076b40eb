package actions

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/reply.json
var replySchemaJSON string

// Reply is a parsed assistant answer: a user-facing message plus optional
// structured actions and suggestion chips.
type Reply struct {
	Message     string   `json:"message"`
	Actions     []Action `json:"actions,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	// Degraded is set when the raw text was not valid structured output and
	// the whole of it was kept as the message instead.
	Degraded bool `json:"-"`
}

var (
	schemaOnce  sync.Once
	replySchema *jsonschema.Schema
)

func compiledSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		s, err := jsonschema.CompileString("reply.json", replySchemaJSON)
		if err != nil {
			panic("actions: compile reply schema: " + err.Error())
		}
		replySchema = s
	})
	return replySchema
}

// jsonBlockRe grabs the first top-level-looking JSON object in a text that
// wraps its JSON in prose or code fences.
var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)

// fallbackMessage is shown when the raw output is empty and there is nothing
// left to degrade to.
const fallbackMessage = "Je n'ai pas compris, peux-tu reformuler ?"

// ParseAssistantReply turns raw model output into a Reply. It tries the text
// as plain JSON first, then the first embedded JSON object. Text that yields
// no schema-valid object degrades to a message-only Reply; the caller always
// gets something displayable.
func ParseAssistantReply(raw string) Reply {
	trimmed := strings.TrimSpace(raw)

	if r, ok := decodeReply(trimmed); ok {
		return r
	}
	if block := jsonBlockRe.FindString(trimmed); block != "" && block != trimmed {
		if r, ok := decodeReply(block); ok {
			return r
		}
	}
	if trimmed == "" {
		return Reply{Message: fallbackMessage, Degraded: true}
	}
	return Reply{Message: trimmed, Degraded: true}
}

// decodeReply attempts one candidate JSON document: schema check first, then
// the typed decode.
func decodeReply(candidate string) (Reply, bool) {
	var generic any
	if err := json.Unmarshal([]byte(candidate), &generic); err != nil {
		return Reply{}, false
	}
	if err := compiledSchema().Validate(generic); err != nil {
		return Reply{}, false
	}
	var r Reply
	if err := json.Unmarshal([]byte(candidate), &r); err != nil {
		return Reply{}, false
	}
	return r, true
}
