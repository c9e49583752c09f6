package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// usageError wraps a parse error with ErrUsage. flag.ErrHelp passes through.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// watermarkFlags holds watermark-related flags.
type watermarkFlags struct {
	text     string
	disabled bool
}

// exportFlags holds PNG export flags. Zero values defer to config and defaults.
type exportFlags struct {
	pixelRatio float64
	width      int
	timeout    string
}

// assetFlags holds theme and asset directory flags.
type assetFlags struct {
	theme     string
	assetPath string
}

// outputFlags holds which artifacts the card command writes.
type outputFlags struct {
	html     bool // Write HTML alongside PNG
	htmlOnly bool // Write HTML only, skip PNG
	text     bool // Write platform text alongside PNG
}

// cardFlags holds all flags for the card command.
type cardFlags struct {
	common     commonFlags
	output     string
	workers    int
	watermark  watermarkFlags
	export     exportFlags
	assets     assetFlags
	outputMode outputFlags
}

// textFlags holds all flags for the text command.
type textFlags struct {
	common commonFlags
	output string
	copy   bool
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	show      string
	assetPath string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json      bool
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addWatermarkFlags adds watermark flags to a FlagSet.
func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "wm-text", "", "watermark text (\"\" = built-in text)")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable watermark")
}

// addExportFlags adds PNG export flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.Float64Var(&f.pixelRatio, "pixel-ratio", 0, "PNG device pixel ratio (1-4, default: 2)")
	fs.IntVar(&f.width, "width", 0, "card width in CSS pixels (320-1600, default: 720)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PNG export timeout (e.g., 30s, 2m)")
}

// addAssetFlags adds theme and asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.theme, "theme", "", "card theme name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PNG")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PNG")
	fs.BoolVar(&f.text, "text", false, "write platform text alongside PNG")
}

// newCardFlagSet registers every card flag on a new FlagSet.
// Shared by parsing and shell completion.
func newCardFlagSet(f *cardFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("card", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addWatermarkFlags(fs, &f.watermark)
	addExportFlags(fs, &f.export)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// newTextFlagSet registers every text flag on a new FlagSet.
func newTextFlagSet(f *textFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("text", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.copy, "copy", false, "also copy the text to the clipboard")
	addCommonFlags(fs, &f.common)

	return fs
}

// newThemesFlagSet registers every themes flag on a new FlagSet.
func newThemesFlagSet(f *themesFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)

	fs.StringVar(&f.show, "show", "", "print a theme definition as YAML")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")

	return fs
}

// parseCardFlags parses card command flags and returns positional args.
func parseCardFlags(args []string) (*cardFlags, []string, error) {
	f := &cardFlags{}
	fs := newCardFlagSet(f)
	fs.Usage = func() { printCardUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}

	return f, fs.Args(), nil
}

// parseTextFlags parses text command flags and returns positional args.
func parseTextFlags(args []string) (*textFlags, []string, error) {
	f := &textFlags{}
	fs := newTextFlagSet(f)
	fs.Usage = func() { printTextUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}

	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string) (*themesFlags, error) {
	f := &themesFlags{}
	fs := newThemesFlagSet(f)
	fs.Usage = func() { printThemesUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}

	return f, nil
}

// newDoctorFlagSet creates the doctor command FlagSet bound to f.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)

	fs.BoolVar(&f.json, "json", false, "output as JSON")
	fs.StringVar(&f.assetPath, "asset-path", "", "also check themes in this asset directory")

	return fs
}

// parseDoctorFlags parses doctor command flags. Positional arguments are rejected.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.Usage = func() { printDoctorUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	return f, nil
}
