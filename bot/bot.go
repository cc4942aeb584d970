package bot

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// newRouter builds the command tree of the bot.
func newRouter(db *gorm.DB, fetcher *input.Fetcher) *exrouter.Route {
	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware, dbMiddleware(db), fetcherMiddleware(fetcher), guildInitMiddleware)
		r.On("extremes", scanAttachments).
			Desc("scan attached images for per-channel extrema (alias: x)").
			Alias("x")
	})

	router.On("history", func(*exrouter.Context) {}).Group(func(r *exrouter.Route) {
		r.Use(logMiddleware, dbMiddleware(db))
		r.On("list", listScans).Desc("list latest scans (alias: ls)").Alias("ls")
		r.On("show", showScan).Desc("show the last result for an image")
	}).Desc("browse recorded scans")

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var f func(depth int, r *exrouter.Route) string
		f = func(depth int, r *exrouter.Route) string {
			text := ""
			for _, v := range r.Routes {
				text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
				text += f(depth+1, &exrouter.Route{Route: v})
			}
			return text
		}
		sendBlock(ctx, f(0, router))
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	return router
}

// Run runs the bot until it receives SIGINT or SIGTERM.
func Run() {
	dg, err := discordgo.New("Bot " + viper.GetString("bot.token"))
	if err != nil {
		logrus.WithError(err).Error("Couldn't create Discord session")
		return
	}

	db, err := models.Open(viper.GetString("db"))
	if err != nil {
		logrus.WithError(err).Error("Couldn't connect to db")
		return
	}
	defer db.Close()

	fetcher := &input.Fetcher{
		MaxBytes:  viper.GetInt64("bot.max_bytes"),
		MaxPixels: viper.GetInt64("bot.max_pixels"),
	}
	router := newRouter(db, fetcher)
	prefix := viper.GetString("bot.prefix")

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if err := router.FindAndExecute(s, prefix, s.State.User.ID, m.Message); err != nil {
			logrus.WithError(err).Debug("No route for message")
		}
	})

	if err = dg.Open(); err != nil {
		logrus.WithError(err).Error("Couldn't open connection")
		return
	}
	defer dg.Close()

	logrus.WithField("prefix", prefix).Info("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	logrus.Info("Shutting down")
}
