// cmd/dhirux/cmd_chat.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhirajp15/dhirux-workflows/internal/state"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "session id (defaults to the shared session)")
	chatCmd.Flags().Bool("stream", false, "print the response as it is generated")
	chatCmd.Flags().Bool("no-record", false, "skip transcript recording")
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send one message through the orchestrator",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		message := strings.Join(args, " ")
		sessionFlag, _ := cmd.Flags().GetString("session")
		streaming, _ := cmd.Flags().GetBool("stream")
		noRecord, _ := cmd.Flags().GetBool("no-record")

		var transcripts types.TranscriptStore
		if !noRecord {
			transcripts = state.NewTranscriptStore(cfg.DataDir)
		}

		service, err := buildService(cfg, transcripts)
		if err != nil {
			return err
		}

		session := types.SessionID(sessionFlag)

		if streaming {
			stream, err := service.StreamChat(cmd.Context(), message, session)
			if err != nil {
				return err
			}
			for fragment := range stream {
				fmt.Print(fragment)
			}
			fmt.Println()
			return nil
		}

		resp, err := service.Chat(cmd.Context(), message, session)
		if err != nil {
			return err
		}
		fmt.Println(resp)
		return nil
	},
}
