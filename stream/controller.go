package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/anim8/animator"
	"github.com/matt-g-everett/anim8/attrimator"
	"github.com/matt-g-everett/anim8/build"
	"github.com/sgostarter/i/l"
)

// ControlMessage asks the controller to change what is playing. Type is one of
// play, next, stop, pause or resume; play needs an Animation.
type ControlMessage struct {
	Type      string `json:"type"`
	Animation string `json:"animation"`
}

// Controller that manages animations.
type Controller struct {
	logger     l.Wrapper
	streamer   *Streamer
	registry   *build.Registry
	sequence   *animator.Sequence
	playlist   *Playlist
	transition attrimator.Transition
	cycle      time.Duration

	twinkler        *Twinkler
	twinkleInterval time.Duration
}

// NewController creates an instance of a Controller.
func NewController(config Config, streamer *Streamer, strip *Strip, registry *build.Registry, logger l.Wrapper) (*Controller, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	c := new(Controller)
	c.logger = logger.WithFields(l.StringField(l.ClsKey, "controllerImpl"))
	c.streamer = streamer
	c.registry = registry
	c.playlist = NewPlaylist(config.Playlist)
	c.cycle = config.Cycle
	c.twinkleInterval = config.Twinkle.Interval

	if err := config.Gradient.Validate(); err != nil {
		return nil, err
	}
	for _, name := range config.Playlist {
		if _, err := registry.Animation(name); err != nil {
			return nil, err
		}
	}

	var err error
	if c.transition, err = registry.Transition(config.Transition); err != nil {
		return nil, err
	}

	ease := registry.Easings().Default()
	if config.StaggerEasing != "" {
		if ease, err = registry.Easings().Get(config.StaggerEasing); err != nil {
			return nil, err
		}
	}
	stagger := float64(config.Stagger) / float64(time.Millisecond)
	c.sequence = animator.NewSequence(stagger, ease, strip.Animators()...)

	if config.Twinkle.Animation != "" {
		anim, err := registry.Animation(config.Twinkle.Animation)
		if err != nil {
			return nil, err
		}
		palette, err := parsePalette(config.Twinkle.Palette)
		if err != nil {
			return nil, err
		}
		c.twinkler = NewTwinkler(strip, anim, config.Twinkle.Chance, palette, newSource())
	}

	return c, nil
}

// Play transitions every pixel into the named animation.
func (c *Controller) Play(name string) error {
	anim, err := c.registry.Animation(name)
	if err != nil {
		return err
	}

	c.streamer.Do(func() {
		err = c.sequence.Transition(c.transition, anim, true)
	})
	if err != nil {
		c.logger.WithFields(l.ErrorField(err), l.StringField("animation", name)).Error("play")
		return err
	}
	c.playlist.Jump(name)
	c.logger.WithFields(l.StringField("animation", name)).Debug("playing")
	return nil
}

func (c *Controller) cycleAnimation() error {
	name, ok := c.playlist.Next()
	if !ok {
		return nil
	}
	return c.Play(name)
}

func (c *Controller) twinkle() {
	if c.twinkler == nil {
		return
	}
	var err error
	c.streamer.Do(func() {
		_, err = c.twinkler.Step()
	})
	if err != nil {
		c.logger.WithFields(l.ErrorField(err)).Error("twinkle")
	}
}

// Handle applies a control message.
func (c *Controller) Handle(msg ControlMessage) error {
	switch msg.Type {
	case "play":
		return c.Play(msg.Animation)
	case "next":
		return c.cycleAnimation()
	case "stop":
		c.streamer.Do(func() {
			for _, a := range c.sequence.Animators() {
				a.Stop()
			}
		})
	case "pause":
		c.streamer.Do(func() {
			for _, a := range c.sequence.Animators() {
				a.Pause()
			}
		})
	case "resume":
		c.streamer.Do(func() {
			for _, a := range c.sequence.Animators() {
				a.Resume()
			}
		})
	default:
		return fmt.Errorf("unknown control message %q", msg.Type)
	}
	return nil
}

func (c *Controller) handleClientMessages(client mqtt.Client, msg mqtt.Message) {
	var message ControlMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		c.logger.WithFields(l.ErrorField(err), l.StringField("topic", msg.Topic())).Error("bad control message")
		return
	}
	if err := c.Handle(message); err != nil {
		c.logger.WithFields(l.ErrorField(err), l.StringField("type", message.Type)).Error("control message")
	}
}

// Subscribe listens for control messages on topic.
func (c *Controller) Subscribe(client mqtt.Client, topic string) error {
	token := client.Subscribe(topic, 0, c.handleClientMessages)
	token.Wait()
	return token.Error()
}

// Run plays the first animation then causes the Controller to cycle through
// the playlist until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	if err := c.cycleAnimation(); err != nil {
		c.logger.WithFields(l.ErrorField(err)).Error("cycle")
	}

	cycleTimer := time.NewTicker(c.cycle)
	defer cycleTimer.Stop()
	twinkleTimer := time.NewTicker(c.twinkleInterval)
	defer twinkleTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cycleTimer.C:
			if err := c.cycleAnimation(); err != nil {
				c.logger.WithFields(l.ErrorField(err)).Error("cycle")
			}
		case <-twinkleTimer.C:
			c.twinkle()
		}
	}
}
