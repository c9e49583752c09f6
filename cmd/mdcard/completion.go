package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/jaydendev/mdcard"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// supportedShells lists shells in the order they are documented.
var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// takesValue reports whether the flag consumes the next argument.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional choices (e.g., shell names)
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"theme": {Values: builtinThemes()},
	"show":  {Values: builtinThemes()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// fileFlagOverrides marks flags whose value is a single file rather than a
// directory for a given command.
var fileFlagOverrides = map[string]map[string]string{
	"text": {"output": "*.txt"},
}

// builtinThemes returns embedded theme names, or nil if they cannot be listed.
func builtinThemes() []string {
	names, err := mdcard.ListThemes()
	if err != nil {
		return nil
	}
	return names
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	overrides := fileFlagOverrides[fs.Name()]

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if glob, ok := overrides[f.Name]; ok {
			fd.Type = flagFile
			fd.FileGlob = glob
		} else if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "card",
			Desc:        "Export markdown files as card images",
			Flags:       extractFlagsFromFlagSet(newCardFlagSet(&cardFlags{})),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "text",
			Desc:        "Convert markdown to WeChat-ready plain text",
			Flags:       extractFlagsFromFlagSet(newTextFlagSet(&textFlags{})),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "themes",
			Desc:  "List or show card themes",
			Flags: extractFlagsFromFlagSet(newThemesFlagSet(&themesFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check system configuration",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: supportedShells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"card", "text", "themes", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
}

// commandNames returns the names of all commands in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagNames returns every spelling of the command's flags (--long and -s).
func flagNames(flags []flagDef) []string {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// flagSpellings returns the flag's names joined by sep.
func flagSpellings(f flagDef, sep string) string {
	if f.Short == "" {
		return "--" + f.Long
	}
	return "--" + f.Long + sep + "-" + f.Short
}

// globList splits a comma-separated glob list.
func globList(glob string) []string {
	return strings.Split(glob, ",")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

// bashGlob converts "*.yaml,*.yml" into an extglob exclusion for compgen -X.
func bashGlob(glob string) string {
	return "!@(" + strings.Join(globList(glob), "|") + ")"
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for mdcard\n\n")
	b.WriteString("_mdcard_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") $(compgen -f -X '%s' -- \"${cur}\") )\n",
		strings.Join(commandNames(cmds), " "), bashGlob("*.md,*.markdown"))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var valued []flagDef
		for _, f := range c.Flags {
			if f.takesValue() {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			for _, f := range valued {
				fmt.Fprintf(&b, "                %s)\n", flagSpellings(f, "|"))
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "                    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "                    COMPREPLY=( $(compgen -f -X '%s' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n", bashGlob(f.FileGlob))
				case flagDir:
					b.WriteString("                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
				}
				b.WriteString("                    return 0\n")
				b.WriteString("                    ;;\n")
			}
			b.WriteString("            esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("            if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flagNames(c.Flags), " "))
			b.WriteString("                return 0\n")
			b.WriteString("            fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -f -X '%s' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n", bashGlob(c.FilePattern))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _mdcard_completions mdcard\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

// zshFileAction returns a _files action restricted to the glob list.
func zshFileAction(glob string) string {
	return `_files -g "` + strings.Join(globList(glob), " ") + `"`
}

// zshFlagSpec renders one _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:" + zshFileAction(f.FileGlob)
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	desc := "[" + zshEscape(f.Desc) + "]"
	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef mdcard\n\n")
	b.WriteString("_mdcard() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    local state\n")
	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1: :->command' \\\n")
	b.WriteString("        '*:: :->args'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        command)\n")
	b.WriteString("            _describe 'command' commands\n")
	fmt.Fprintf(&b, "            %s\n", zshFileAction("*.md,*.markdown"))
	b.WriteString("            ;;\n")
	b.WriteString("        args)\n")
	b.WriteString("            case $words[1] in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "                %s)\n", c.Name)
		var specs []string
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, "'1:"+c.Name+":("+strings.Join(c.Args, " ")+")'")
		case c.TakesFiles:
			specs = append(specs, "'*:markdown file:"+zshFileAction(c.FilePattern)+"'")
		}
		if len(specs) == 0 {
			b.WriteString("                    ;;\n")
			continue
		}
		b.WriteString("                    _arguments \\\n")
		for i, spec := range specs {
			sep := " \\\n"
			if i == len(specs)-1 {
				sep = "\n"
			}
			fmt.Fprintf(&b, "                        %s%s", spec, sep)
		}
		b.WriteString("                    ;;\n")
	}

	b.WriteString("            esac\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("if [ \"$funcstack[1]\" = \"_mdcard\" ]; then\n")
	b.WriteString("    _mdcard \"$@\"\n")
	b.WriteString("else\n")
	b.WriteString("    compdef _mdcard mdcard\n")
	b.WriteString("fi\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for mdcard\n\n")
	b.WriteString("function __fish_mdcard_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_mdcard_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c mdcard -f\n\n")

	b.WriteString("# Commands\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdcard -n __fish_mdcard_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("complete -c mdcard -n __fish_mdcard_needs_command -k -a '(__fish_complete_suffix .md)'\n")

	for _, c := range cmds {
		cond := fishQuote("__fish_mdcard_using_command " + c.Name)
		fmt.Fprintf(&b, "\n# %s\n", c.Name)
		for _, f := range c.Flags {
			var parts []string
			parts = append(parts, "complete -c mdcard -n "+cond)
			if f.Short != "" {
				parts = append(parts, "-s "+f.Short)
			}
			parts = append(parts, "-l "+f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				parts = append(parts, "-x -a "+fishQuote(strings.Join(f.Values, " ")))
			case flagFile:
				parts = append(parts, "-r -F")
			case flagDir:
				parts = append(parts, "-x -a '(__fish_complete_directories)'")
			default:
				parts = append(parts, "-x")
			}
			parts = append(parts, "-d "+fishQuote(f.Desc))
			b.WriteString(strings.Join(parts, " ") + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c mdcard -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c mdcard -n %s -k -a '(__fish_complete_suffix .md)'\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// psArray renders a PowerShell array literal.
func psArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = psQuote(v)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# powershell completion for mdcard\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName mdcard -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(flagNames(c.Flags)))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(c.Args))
		}
	}
	b.WriteString("    }\n\n")

	// Enum values keyed by every spelling of the flag
	seen := make(map[string]bool)
	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        %s = %s\n", psQuote("--"+f.Long), psArray(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        %s = %s\n", psQuote("-"+f.Short), psArray(f.Values))
			}
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') {
        $elements = $elements[0..($elements.Count - 2)]
    }

    if ($elements.Count -le 1) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $cmd = $elements[1]
    $prev = $elements[-1]

    if ($values.ContainsKey($prev)) {
        $values[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {
        $flags[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
        return
    }

    if ($positional.ContainsKey($cmd)) {
        $positional[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
}
`)

	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdcard completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(mdcard completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdcard completion fish > ~/.config/fish/completions/mdcard.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    mdcard completion powershell | Out-String | Invoke-Expression")
}
