package logging

import (
	"fmt"
	"image/color"
	"runtime"
	"strings"
	"time"

	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

// Verbosity is the severity scale of game log calls.
type Verbosity int

const (
	Fatal Verbosity = iota
	Error
	Warning
	Display
	Log
	Verbose
	VeryVerbose
)

func (v Verbosity) String() string {
	switch v {
	case Fatal:
		return "Fatal"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case Display:
		return "Display"
	case Log:
		return "Log"
	case Verbose:
		return "Verbose"
	case VeryVerbose:
		return "VeryVerbose"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// Level maps the verbosity onto zerolog.
func (v Verbosity) Level() zerolog.Level {
	switch v {
	case Fatal:
		return zerolog.FatalLevel
	case Error:
		return zerolog.ErrorLevel
	case Warning:
		return zerolog.WarnLevel
	case Display:
		return zerolog.InfoLevel
	case Log:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// OnScreenDuration is how long warnings and errors stay on screen.
const OnScreenDuration = 10 * time.Second

var (
	onScreenError   = color.RGBA{R: 255, A: 255}
	onScreenWarning = color.RGBA{R: 255, G: 165, A: 255}
)

// Context identifies who is logging: the process role and the object label.
// OnScreen may be nil, e.g. on the dedicated server.
type Context struct {
	Mode     netconfig.NetMode
	Instance int // Client instance number, ignored for other modes
	Label    string
	OnScreen OnScreen
}

// Role renders the process role the way it appears in log lines.
func Role(mode netconfig.NetMode, instance int) string {
	if mode == netconfig.Client {
		return fmt.Sprintf("Client %d", instance)
	}
	return mode.String()
}

// CallerContext formats msg with the role, calling function and label:
//
//	\t [Server D] | "msg"\t | Func=function | Label=label
func CallerContext(ctx Context, msg, function string) string {
	label := ctx.Label
	if label == "" {
		label = "NA"
	}
	var b strings.Builder
	b.Grow(len(msg) + len(function) + len(label) + 48)
	b.WriteString("\t [")
	b.WriteString(Role(ctx.Mode, ctx.Instance))
	b.WriteString("] | \"")
	b.WriteString(msg)
	b.WriteString("\"\t | Func=")
	b.WriteString(function)
	b.WriteString(" | Label=")
	b.WriteString(label)
	return b.String()
}

// Game logs msg with caller context at the given verbosity. Errors and
// warnings are also posted on screen, keyed by label so a repeating message
// replaces itself. Fatal panics after logging.
func Game(logger zerolog.Logger, ctx Context, v Verbosity, msg string) {
	emit(logger, ctx, v, msg, 2)
}

// Info is the printf form of Game.
func Info(logger zerolog.Logger, ctx Context, v Verbosity, format string, args ...any) {
	emit(logger, ctx, v, fmt.Sprintf(format, args...), 2)
}

func emit(logger zerolog.Logger, ctx Context, v Verbosity, msg string, skip int) {
	line := CallerContext(ctx, msg, callerName(skip))

	switch v {
	case Error:
		postOnScreen(ctx, line, onScreenError)
	case Warning:
		postOnScreen(ctx, line, onScreenWarning)
	}

	logger.WithLevel(v.Level()).Msg(line)

	if v == Fatal {
		panic(line)
	}
}

func postOnScreen(ctx Context, line string, c color.RGBA) {
	if ctx.OnScreen == nil {
		return
	}
	ctx.OnScreen.AddMessage(OnScreenMessage{
		Key:      xxhash.Sum64String(ctx.Label),
		Duration: OnScreenDuration,
		Color:    c,
		Text:     line,
	})
}

// callerName returns the short name of the function skip frames above its
// caller.
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "No Useful Symbol"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "No Useful Symbol"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
