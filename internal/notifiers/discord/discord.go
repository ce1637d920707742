// Package discord sends notifications to a Discord channel via webhook.
package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hibare/GoCommon/v2/pkg/notifiers/discord"
	"github.com/zettelkit/zettelkit/internal/config"
	"github.com/zettelkit/zettelkit/internal/constants"
)

const (
	successColor         = 1498748
	failureColor         = 14554702
	deletionFailureColor = 14590998
)

// Discord sends notifications to a Discord channel via webhook.
type Discord struct {
	Cfg    *config.Config
	client discord.ClientIface
}

// Enabled checks if the Discord notifier is enabled in the configuration.
func (d *Discord) Enabled() bool {
	return d.Cfg.Notifiers.Discord.Enabled
}

// NotifyBackupSuccess sends a success notification to the Discord channel.
func (d *Discord) NotifyBackupSuccess(ctx context.Context, artifact string) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Color: successColor,
				Fields: []discord.EmbedField{
					{
						Name:   "Artifact",
						Value:  artifact,
						Inline: false,
					},
				},
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    "**Zettelkasten Backup Successful**",
	}

	return d.client.Send(ctx, &message)
}

// NotifyBackupFailure sends a failure notification to the Discord channel.
func (d *Discord) NotifyBackupFailure(ctx context.Context, err error) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Title:       "Error",
				Description: err.Error(),
				Color:       failureColor,
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    "**Zettelkasten Backup Failed**",
	}

	return d.client.Send(ctx, &message)
}

// NotifyCleanupSummary sends a cleanup summary to the Discord channel.
func (d *Discord) NotifyCleanupSummary(ctx context.Context, kept, deleted, failed int) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Color: successColor,
				Fields: []discord.EmbedField{
					{
						Name:   "Kept",
						Value:  strconv.Itoa(kept),
						Inline: true,
					},
					{
						Name:   "Deleted",
						Value:  strconv.Itoa(deleted),
						Inline: true,
					},
					{
						Name:   "Failed",
						Value:  strconv.Itoa(failed),
						Inline: true,
					},
				},
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    "**Zettelkasten Backup Cleanup Finished**",
	}

	return d.client.Send(ctx, &message)
}

// NotifyCleanupFailure sends a cleanup failure notification to the Discord
// channel.
func (d *Discord) NotifyCleanupFailure(ctx context.Context, err error) error {
	message := discord.Message{
		Embeds: []discord.Embed{
			{
				Title:       "Error",
				Description: err.Error(),
				Color:       deletionFailureColor,
			},
		},
		Components: []discord.Component{},
		Username:   constants.ProgramIdentifier,
		Content:    "**Zettelkasten Backup Cleanup Failed**",
	}

	return d.client.Send(ctx, &message)
}

// NewDiscordNotifier creates a new Discord notifier instance. When the
// notifier is disabled no webhook client is constructed.
func NewDiscordNotifier(cfg *config.Config) (*Discord, error) {
	if !cfg.Notifiers.Discord.Enabled {
		return &Discord{Cfg: cfg}, nil
	}

	client, err := discord.NewClient(discord.Options{
		WebhookURL: cfg.Notifiers.Discord.Webhook,
	})
	if err != nil {
		return nil, fmt.Errorf("creating discord client: %w", err)
	}

	return &Discord{
		Cfg:    cfg,
		client: client,
	}, nil
}
