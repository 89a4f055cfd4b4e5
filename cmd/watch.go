/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// phaseEvent is the payload the site broker publishes when a phase changes.
type phaseEvent struct {
	PhaseId   int    `json:"phase_id"`
	PhaseName string `json:"phase_name"`
	Action    string `json:"action"`
	Material  string `json:"material,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watch phase change events from the site broker",
	Long: `Watch subscribes to the MQTT broker the site crew publishes to and prints
phase material changes as they happen. Useful to keep a terminal open while
someone else is picking materials.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if Cfg == nil || Cfg.MqttBroker == "" {
		return errors.New("mqtt broker not configured; set mqtt_broker in config")
	}

	topic, _ := cmd.Flags().GetString("topic")
	refresh, _ := cmd.Flags().GetBool("refresh")

	apiClient, apiErr := newApiClient()
	if refresh && apiErr != nil {
		return apiErr
	}

	opts := mqtt.NewClientOptions().
		AddBroker(Cfg.MqttBroker).
		SetClientID(fmt.Sprintf("reno-watch-%d", os.Getpid())).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	opts.OnConnect = func(client mqtt.Client) {
		color.Green("Connected to %s, watching %s\n", Cfg.MqttBroker, topic)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		color.Yellow("Connection lost: %v (reconnecting)\n", err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to broker: %w", token.Error())
	}
	defer client.Disconnect(250)

	handler := func(client mqtt.Client, msg mqtt.Message) {
		var event phaseEvent
		if err := json.Unmarshal(msg.Payload(), &event); err != nil {
			color.Yellow("Unparseable event on %s: %v\n", msg.Topic(), err)
			return
		}
		printPhaseEvent(event)

		if refresh && event.PhaseId > 0 {
			if phase, err := apiClient.GetPhase(event.PhaseId); err == nil {
				printPhaseSummary(*phase)
			}
		}
	}

	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping watch.")
	return nil
}

func printPhaseEvent(event phaseEvent) {
	ts := time.Now().Format("15:04:05")
	label := event.PhaseName
	if label == "" {
		label = fmt.Sprintf("phase %d", event.PhaseId)
	}
	switch event.Action {
	case "added":
		color.Green("[%s] %s: added %dx %s\n", ts, label, event.Quantity, event.Material)
	case "updated":
		fmt.Printf("[%s] %s: %s is now %dx\n", ts, label, event.Material, event.Quantity)
	case "deleted":
		color.HiRed("[%s] %s: removed %s\n", ts, label, event.Material)
	default:
		fmt.Printf("[%s] %s: %s\n", ts, label, event.Action)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("topic", "t", "reno/phases/#", "broker topic filter to subscribe to")
	watchCmd.Flags().BoolP("refresh", "r", false, "refetch and summarize the phase after each event")
}
