package tasks

import (
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/rover/logging"
)

// Config describes one task in a rover config file. Attributes are decoded into the variant's own
// config struct using its json tags.
type Config struct {
	Type       string                 `json:"type"`
	Priority   int                    `json:"priority,omitempty"`
	Next       string                 `json:"next,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// Validate ensures all parts of the config are valid. It builds and discards the task.
func (conf *Config) Validate(path string) error {
	_, err := FromConfig(*conf, logging.NewBlankLogger("validate"))
	return errors.Wrap(err, path)
}

// A Constructor builds a task from its decoded config.
type Constructor func(conf Config, logger logging.Logger) (Task, error)

var (
	registryMu   sync.RWMutex
	constructors = map[Type]Constructor{}
)

// Register makes a task type constructible from config. It panics on duplicate registration.
func Register(t Type, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := constructors[t]; ok {
		panic(errors.Errorf("task type %s already registered", t))
	}
	constructors[t] = ctor
}

func init() {
	Register(TypeNavigate, func(conf Config, logger logging.Logger) (Task, error) {
		cfg, err := DecodeAttributes[NavigateConfig](conf.Attributes)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return NewNavigate(cfg, logger), nil
	})
	Register(TypeControlWings, func(conf Config, logger logging.Logger) (Task, error) {
		cfg, err := DecodeAttributes[ControlWingsConfig](conf.Attributes)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return newControlWingsFromConfig(cfg, logger), nil
	})
	Register(TypeWait, func(conf Config, logger logging.Logger) (Task, error) {
		cfg, err := DecodeAttributes[WaitConfig](conf.Attributes)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return NewWait(cfg, logger), nil
	})
}

// FromConfig builds the task conf describes.
func FromConfig(conf Config, logger logging.Logger) (Task, error) {
	t, err := TypeFromString(conf.Type)
	if err != nil {
		return nil, err
	}
	next, err := TypeFromString(conf.Next)
	if err != nil {
		return nil, errors.Wrap(err, "next")
	}

	registryMu.RLock()
	ctor, ok := constructors[t]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("task type %q is not constructible", conf.Type)
	}

	task, err := ctor(conf, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "%s task", t)
	}
	if c, ok := task.(configurable); ok {
		if conf.Priority != 0 {
			c.setPriority(conf.Priority)
		}
		c.setNext(next)
	}
	return task, nil
}

// DecodeAttributes decodes a raw attribute map into T using its json tags. Unknown keys are an
// error so that typos in a config file are not silently ignored.
func DecodeAttributes[T any](attributes map[string]interface{}) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return out, err
	}
	return out, nil
}
