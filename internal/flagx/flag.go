// Package flagx holds small helpers for layering command-line flags on top
// of a JSON config file.
package flagx

import (
	"flag"
	"strings"
)

// ConfigFlags are the flag names that point at a JSON config file.
var ConfigFlags = []string{"-c", "-config"}

// FilterArgs returns the subset of args made of allowedFlags and their
// values. Both "-c conf.json" and "-config=conf.json" forms are kept; a
// separate value is only taken when it does not start with '-'.
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath extracts the config file path given via -c or -config. Every
// other argument is ignored, so it can run before the caller's own flag set.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return path
}

// SplitCommand separates a leading subcommand from the flags that follow it,
// e.g. ["login", "-u", "alice"] becomes "login", ["-u", "alice"]. If the
// first argument is a flag, the command is empty and args are returned as is.
func SplitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", args
	}
	return args[0], args[1:]
}
