package discord

import (
	"strings"

	errori18n "github.com/louisbranch/skillbar/internal/platform/errors/i18n"
	i18ncatalog "github.com/louisbranch/skillbar/internal/platform/i18n/catalog"
)

// Aliases are the command names that trigger a preview.
var Aliases = []string{"skillbar", "s", "build"}

const (
	helpCommand = "help"

	commandsNamespace = "commands"
	usageKey          = "COMMAND_USAGE"
)

// ParseCommand extracts the template argument from "<prefix><alias> <template>".
// ok is false when content is not a preview command. A matched command
// without an argument returns an empty template.
func ParseCommand(prefix, content string) (template string, ok bool) {
	name, args, ok := splitCommand(prefix, content)
	if !ok || !isAlias(name) {
		return "", false
	}
	if len(args) == 0 {
		return "", true
	}
	return args[0], true
}

func isHelp(prefix, content string) bool {
	name, _, ok := splitCommand(prefix, content)
	return ok && name == helpCommand
}

func splitCommand(prefix, content string) (string, []string, bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

func isAlias(name string) bool {
	for _, alias := range Aliases {
		if name == alias {
			return true
		}
	}
	return false
}

// usage renders the command help text for locale, falling back to the base
// locale when it has no commands catalog.
func usage(locale, prefix string) string {
	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(locale, commandsNamespace)
	return errori18n.NewCatalog(resolved, messages).Format(usageKey, map[string]string{"Prefix": prefix})
}
