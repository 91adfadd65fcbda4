package stream

import (
    "time"
)

type Config struct {
    Mqtt struct {
        URL string `yaml:"url"`
        ClientID string `yaml:"clientId"`
        Username string `yaml:"username"`
        Password string `yaml:"password"`
        Topics struct {
            Stream string `yaml:"stream"`
            Control string `yaml:"control"`
        } `yaml:"topics"`
    } `yaml:"mqtt"`
    Listen string `yaml:"listen"`
    Pixels int `yaml:"pixels"`
    FrameRate float64 `yaml:"frameRate"`

    // Animations is the definitions file the playlist names come from.
    Animations string `yaml:"animations"`
    Playlist []string `yaml:"playlist"`
    Cycle time.Duration `yaml:"cycle"`
    Transition string `yaml:"transition"`
    // Stagger delays each pixel behind the one before it.
    Stagger time.Duration `yaml:"stagger"`
    StaggerEasing string `yaml:"staggerEasing"`

    Twinkle struct {
        Animation string `yaml:"animation"`
        Chance int `yaml:"chance"`
        Palette []string `yaml:"palette"`
        Interval time.Duration `yaml:"interval"`
    } `yaml:"twinkle"`

    Gradient Gradient `yaml:"gradient"`
}

// SetDefaults fills in everything left out of the file.
func (c *Config) SetDefaults() {
    if c.Mqtt.ClientID == "" {
        c.Mqtt.ClientID = "anim8"
    }
    if c.Mqtt.Topics.Stream == "" {
        c.Mqtt.Topics.Stream = "home/xmastree/stream"
    }
    if c.Mqtt.Topics.Control == "" {
        c.Mqtt.Topics.Control = "home/xmastree/control"
    }
    if c.Listen == "" {
        c.Listen = ":3000"
    }
    if c.Pixels <= 0 {
        c.Pixels = 500
    }
    if c.Pixels > MaxPixels {
        c.Pixels = MaxPixels
    }
    if c.FrameRate <= 0 {
        c.FrameRate = 30
    }
    if c.Cycle <= 0 {
        c.Cycle = time.Minute
    }
    if c.Twinkle.Chance <= 0 {
        c.Twinkle.Chance = 400
    }
    if c.Twinkle.Interval <= 0 {
        c.Twinkle.Interval = 100 * time.Millisecond
    }
}
