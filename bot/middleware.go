package bot

import (
	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// Log a received message event
func logMsg(s *discordgo.Session, m *discordgo.Message) {
	fields := logrus.Fields{
		"author":      m.Author.Username,
		"attachments": len(m.Attachments),
	}
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		fields["guild"] = guild.Name
	}
	if channel, err := s.State.Channel(m.ChannelID); err == nil {
		fields["channel"] = channel.Name
	}
	logrus.WithFields(fields).Info(m.Content)
}

// Middleware that logs processed messages
func logMiddleware(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		logMsg(ctx.Ses, ctx.Msg)
		if fn != nil {
			fn(ctx)
		}
	}
}

// Middleware that adds the database to commands' context.
func dbMiddleware(db *gorm.DB) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("db", db)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}

// Middleware that adds the image fetcher to commands' context.
func fetcherMiddleware(f *input.Fetcher) exrouter.MiddlewareFunc {
	return func(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
		return func(ctx *exrouter.Context) {
			ctx.Set("fetcher", f)
			if fn != nil {
				fn(ctx)
			}
		}
	}
}

// Middleware that ensures the Discord guild is known to the DB
func guildInitMiddleware(fn exrouter.HandlerFunc) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		if err := createGuild(ctx); err != nil {
			return
		}

		if fn != nil {
			fn(ctx)
		}
	}
}
