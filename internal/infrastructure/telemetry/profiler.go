package telemetry

import (
	"context"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled           bool
	ServerAddress     string // e.g. http://pyroscope:4040
	ApplicationName   string
	BasicAuthUser     string
	BasicAuthPassword string
	// Heap, goroutine and CPU profiles are always collected. Mutex and
	// block profiles cost more and are opt-in.
	MutexProfiles bool
	BlockProfiles bool
}

// Profiler pushes profiles to Pyroscope until stopped. A disabled profiler
// is inert.
type Profiler struct {
	pyro     *pyroscope.Profiler
	logger   *zap.Logger
	stopOnce sync.Once
	stopErr  error
}

// NewProfiler starts pushing profiles when cfg is enabled.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}
	pc, err := pyroscopeConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.MutexProfiles {
		runtime.SetMutexProfileFraction(5)
	}
	if cfg.BlockProfiles {
		runtime.SetBlockProfileRate(5)
	}
	if p.pyro, err = pyroscope.Start(pc); err != nil {
		return nil, errors.Wrap(err, "start pyroscope profiler")
	}
	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
	)
	return p, nil
}

func pyroscopeConfig(cfg ProfilerConfig, logger *zap.Logger) (pyroscope.Config, error) {
	switch {
	case cfg.ServerAddress == "":
		return pyroscope.Config{}, errors.New("profiler server address is required when profiling is enabled")
	case cfg.ApplicationName == "":
		return pyroscope.Config{}, errors.New("profiler application name is required when profiling is enabled")
	}
	pc := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger.Named("pyroscope").Sugar()},
		Tags:            map[string]string{},
		ProfileTypes:    profileTypes(cfg),
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		pc.Tags["hostname"] = host
	}
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		pc.BasicAuthUser, pc.BasicAuthPassword = cfg.BasicAuthUser, cfg.BasicAuthPassword
	}
	return pc, nil
}

// profileTypes lists CPU, allocation, heap and goroutine profiles, plus
// mutex and block profiles when asked for.
func profileTypes(cfg ProfilerConfig) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if cfg.MutexProfiles {
		types = append(types, pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration)
	}
	if cfg.BlockProfiles {
		types = append(types, pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration)
	}
	return types
}

// Stop flushes pending profiles. Later calls return the first result.
func (p *Profiler) Stop() error {
	p.stopOnce.Do(func() {
		if p.pyro == nil {
			return
		}
		if err := p.pyro.Stop(); err != nil {
			p.logger.Error("Error stopping profiler", zap.Error(err))
			p.stopErr = errors.Wrap(err, "stop profiler")
		}
	})
	return p.stopErr
}

// Running reports whether profiles are being pushed
func (p *Profiler) Running() bool {
	return p.pyro != nil
}

type pyroscopeLogger struct {
	*zap.SugaredLogger
}

// MaxLabelValueLength bounds profiling label values.
const MaxLabelValueLength = 128

// highCardinality reports labels that are unique per request or user and
// never attached to profiles.
func highCardinality(key string) bool {
	switch key {
	case "user_id", "username", "request_id", "trace_id", "span_id":
		return true
	}
	return false
}

// WithProfilingLabels runs fn with labels attached to the profiles it
// produces. Empty and high cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns key/value pairs sorted by key
func sanitizeLabels(labels map[string]string) []string {
	var pairs []string
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		key, v := sanitizeLabelKey(k), labels[k]
		if key == "" || v == "" || highCardinality(key) {
			continue
		}
		pairs = append(pairs, key, v[:min(len(v), MaxLabelValueLength)])
	}
	return pairs
}

// sanitizeLabelKey lowercases key and keeps [a-z0-9_]
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		case c == ' ' || c == '-':
			b.WriteByte('_')
		}
	}
	return b.String()
}
