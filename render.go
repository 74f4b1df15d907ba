// ABOUTME: Trigger markup rendering for flyout buttons and links.
// ABOUTME: Generates escaped HTML carrying the data-flyout attributes.

package flyout

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// ButtonArgs adjusts the rendered trigger button. Attrs become extra
// attributes on the element and must already be trusted names.
type ButtonArgs struct {
	Text  string
	Class string
	Icon  string
	Attrs map[string]string
}

// LinkArgs adjusts the rendered trigger link.
type LinkArgs struct {
	Class string
	Attrs map[string]string
}

func renderButton(compositeID string, cfg Config, data map[string]string, args ButtonArgs) string {
	var sb strings.Builder

	class := "flyout-trigger"
	if args.Class != "" {
		class += " " + args.Class
	}
	sb.WriteString(fmt.Sprintf(`<button type="button" class="%s"`, html.EscapeString(class)))
	writeFlyoutAttrs(&sb, compositeID, cfg, data, args.Attrs)
	sb.WriteString(`>`)

	if args.Icon != "" {
		sb.WriteString(fmt.Sprintf(`<span class="flyout-icon %s" aria-hidden="true"></span>`, html.EscapeString(args.Icon)))
	}
	text := args.Text
	if text == "" {
		text = "Edit"
	}
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(`</button>`)
	return sb.String()
}

func renderLink(compositeID string, cfg Config, text string, data map[string]string, args LinkArgs) string {
	var sb strings.Builder

	class := "flyout-trigger"
	if args.Class != "" {
		class += " " + args.Class
	}
	sb.WriteString(fmt.Sprintf(`<a href="#" class="%s"`, html.EscapeString(class)))
	writeFlyoutAttrs(&sb, compositeID, cfg, data, args.Attrs)
	sb.WriteString(`>`)
	sb.WriteString(html.EscapeString(text))
	sb.WriteString(`</a>`)
	return sb.String()
}

// writeFlyoutAttrs emits the data attributes the client widget reads to open
// the panel. Map keys are sorted so output is deterministic.
func writeFlyoutAttrs(sb *strings.Builder, compositeID string, cfg Config, data, extra map[string]string) {
	sb.WriteString(fmt.Sprintf(` data-flyout="%s" data-flyout-width="%s"`,
		html.EscapeString(compositeID), html.EscapeString(string(cfg.Width))))

	for _, k := range sortedKeys(data) {
		sb.WriteString(fmt.Sprintf(` data-%s="%s"`, html.EscapeString(k), html.EscapeString(data[k])))
	}
	for _, k := range sortedKeys(extra) {
		sb.WriteString(fmt.Sprintf(` %s="%s"`, html.EscapeString(k), html.EscapeString(extra[k])))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
