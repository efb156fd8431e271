package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"jitcss/content"
	"jitcss/jit"
	"jitcss/registry"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// Prepare builds registry, content extractor and generator from current
// configuration. Commands call it after applying command line overrides
// to Cfg.
func (e *LocalEnv) Prepare() error {
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	reg, err := registry.New(e.Cfg.RegistryOptions(), log)
	if err != nil {
		return fmt.Errorf("unable to prepare registry: %w", err)
	}

	b := e.Cfg.Build
	if e.Extractor, err = content.NewExtractor(content.Options{
		Patterns: b.Content,
		Base:     b.ContentBase,
		CodePage: b.ContentCP,
	}, log); err != nil {
		return fmt.Errorf("unable to prepare content extractor: %w", err)
	}

	e.Generator = jit.New(reg, jit.Options{Workers: b.Workers, Style: b.OutputStyle}, log)

	log.Debug("Environment prepared",
		zap.Strings("content", e.Extractor.Patterns()),
		zap.String("separator", reg.Separator()),
		zap.Int("workers", b.Workers))
	return nil
}
