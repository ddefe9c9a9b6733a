package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conduit-lang/edmoas/internal/cli/ui"
	"github.com/conduit-lang/edmoas/internal/config"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/edm/fixture"
	"github.com/conduit-lang/edmoas/internal/paths"
	"github.com/conduit-lang/edmoas/pkg/convert"
)

// ErrNoModel is returned when a command needs a model and --model is empty
var ErrNoModel = errors.New("no model fixture given, use --model")

// session is a loaded model with the paths selected on the command line
type session struct {
	fixture *fixture.Fixture
	convert *convert.Context
	paths   []*paths.Path
	logger  *zap.Logger
}

// openSession loads settings and the model fixture. Paths given as args
// replace the ones listed in the fixture. Every path must parse and have a
// valid shape.
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	stderr := cmd.ErrOrStderr()
	if modelPath == "" {
		return nil, ErrNoModel
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprint(stderr, ui.ConfigError(err.Error(), noColor))
		return nil, reportedError{err}
	}

	f, err := fixture.Load(modelPath)
	if err != nil {
		fmt.Fprint(stderr, ui.ModelError(err.Error(), noColor))
		return nil, reportedError{err}
	}
	if len(args) > 0 {
		f.Paths = args
	}

	logger := newLogger(stderr)
	cc, err := convert.NewContext(f.Model, settings, convert.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ps, err := f.ParsePaths()
	if err != nil {
		var pathErr *fixture.PathError
		if errors.As(err, &pathErr) {
			fmt.Fprint(stderr, ui.PathNotFoundError(pathErr.Raw, pathErr.Err.Error(), suggestPaths(f.Model, pathErr.Raw), noColor))
			return nil, reportedError{err}
		}
		return nil, err
	}
	for _, p := range ps {
		if _, err := p.Classify(); err != nil {
			fmt.Fprint(stderr, ui.PathNotFoundError(p.String(), err.Error(), suggestPaths(f.Model, p.String()), noColor))
			return nil, reportedError{err}
		}
	}

	logger.Debug("model loaded",
		zap.String("model", modelPath),
		zap.Stringer("id", f.Model.ID()),
		zap.Int("paths", len(ps)),
	)
	return &session{fixture: f, convert: cc, paths: ps, logger: logger}, nil
}

// newLogger returns a development logger writing to w when --verbose is
// set and a no-op logger otherwise
func newLogger(w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel))
}

func suggestPaths(m *edm.Model, raw string) []string {
	var candidates []string
	for _, p := range paths.Enumerate(m) {
		candidates = append(candidates, p.String())
	}
	return ui.FindSimilar(raw, candidates, nil)
}
