package tags

import "catty/internal/logger"

// Chain tries multiple sources in order, returning the first non-empty
// result. An I/O error stops the chain immediately: another reader would hit
// the same filesystem.
type Chain struct {
	sources []Source
	logger  *logger.Logger
}

// NewChain creates a Chain that queries sources in order.
func NewChain(sources []Source, log *logger.Logger) *Chain {
	return &Chain{sources: sources, logger: log}
}

// Default is the reader used by the CLI: taglib first, dhowden/tag second.
func Default(log *logger.Logger) *Chain {
	return NewChain([]Source{NewTaglib(), NewDhowden()}, log)
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Read(path string) (Tags, error) {
	var lastErr error
	readable := false
	for _, s := range c.sources {
		t, err := s.Read(path)
		if err != nil {
			if IsIOError(err) {
				return Tags{}, err
			}
			c.logger.Debug("tag reader %s failed: %v", s.Name(), err)
			lastErr = err
			continue
		}
		if !t.IsEmpty() {
			return t, nil
		}
		readable = true
	}
	if readable || lastErr == nil {
		return Tags{}, nil
	}
	return Tags{}, lastErr
}
