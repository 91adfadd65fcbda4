package main

import (
    "context"
    "flag"
    "log"
    "os"
    "os/signal"
    "time"

    "github.com/eclipse/paho.mqtt.golang"
    "github.com/matt-g-everett/anim8/animator"
    "github.com/matt-g-everett/anim8/api"
    "github.com/matt-g-everett/anim8/build"
    "github.com/matt-g-everett/anim8/stream"
    "github.com/sgostarter/i/l"
    "gopkg.in/yaml.v2"
)

type app struct {
    Config stream.Config
    Client mqtt.Client
    Registry *build.Registry
    Streamer *stream.Streamer
    Controller *stream.Controller
    logger l.Wrapper
}

func newApp(logger l.Wrapper) *app {
    a := new(app)
    a.logger = logger
    return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
    a.logger.Info("Connected")
    if a.Config.Mqtt.Topics.Control == "" {
        return
    }
    if err := a.Controller.Subscribe(client, a.Config.Mqtt.Topics.Control); err != nil {
        a.logger.WithFields(l.ErrorField(err)).Error("subscribe")
    }
}

func (a *app) run(ctx context.Context) {
    if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
        a.logger.Fatal(token.Error())
    }
    defer a.Client.Disconnect(250)

    go a.Controller.Run(ctx)
    a.Streamer.Run(ctx)
}

func (a *app) readConfig(configPath string) {
    f, err := os.Open(configPath)
    if err != nil {
        a.logger.Fatal(err)
    }
    defer f.Close()

    decoder := yaml.NewDecoder(f)
    err = decoder.Decode(&a.Config)
    if err != nil {
        a.logger.Fatal(err)
    }
    a.Config.SetDefaults()
}

func (a *app) build() {
    schema, err := stream.PixelSchema()
    if err != nil {
        a.logger.Fatal(err)
    }
    a.Registry = build.NewRegistry(schema, nil, a.logger)
    if a.Config.Animations != "" {
        if err := a.Registry.LoadFile(a.Config.Animations); err != nil {
            a.logger.Fatal(err)
        }
    }

    loop := animator.NewLoop(a.logger)
    strip := stream.NewStrip(a.Config.Pixels, schema, loop, a.logger)
    strip.Paint(a.Config.Gradient, 1.0, 0.05)

    sink := stream.NewMqttSink(a.Client, a.Config.Mqtt.Topics.Stream)
    a.Streamer = stream.NewStreamer(loop, strip, sink, a.Config.FrameRate, a.logger)

    a.Controller, err = stream.NewController(a.Config, a.Streamer, strip, a.Registry, a.logger)
    if err != nil {
        a.logger.Fatal(err)
    }
}

func main() {
    // mqtt.DEBUG = log.New(os.Stdout, "", 0)
    mqtt.ERROR = log.New(os.Stdout, "", 0)

    // Parse command line parameters
    configPath := flag.String("config", "config.yaml", "YAML config file.")
    flag.Parse()

    logger := l.NewConsoleLoggerWrapper()

    // Read the config
    a := newApp(logger)
    a.readConfig(*configPath)
    logger.WithFields(l.StringField("config", *configPath), l.IntField("pixels", a.Config.Pixels)).Debug("config loaded")

    options := mqtt.NewClientOptions().
        AddBroker(a.Config.Mqtt.URL).
        SetClientID(a.Config.Mqtt.ClientID).
        SetUsername(a.Config.Mqtt.Username).
        SetPassword(a.Config.Mqtt.Password).
        SetKeepAlive(30 * time.Second).
        SetPingTimeout(5 * time.Second).
        SetOnConnectHandler(a.handleOnConnect)
    a.Client = mqtt.NewClient(options)
    a.build()

    server := api.NewApi(a.Streamer, a.Registry, logger)
    go func() {
        if err := server.Serve(a.Config.Listen); err != nil {
            logger.WithFields(l.ErrorField(err)).Error("serve")
        }
    }()

    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
    defer cancel()
    a.run(ctx)
}
