package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Archna-29/portfolio/internal/layout"
	"github.com/Archna-29/portfolio/internal/player"
)

var cfg = loadConfig()

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Archna Bishnoi's portfolio",
	Long: `Serves the single-page portfolio over HTTP. The page keeps a websocket
open so the scroll-driven sidebar and the welcome music widget are driven
from here. Use "portfolio term" to read it in a terminal instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.MusicPath, "music", cfg.MusicPath, "background music file (mp3 or wav)")
	rootCmd.PersistentFlags().Float64Var(&cfg.InitialVolume, "volume", cfg.InitialVolume, "initial music volume, 0 to 1")
	rootCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP port")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(cfg Config) error {
	r := setupRouter(cfg)
	log.Printf("Portfolio listening on :%s", cfg.Port)
	return r.Run(":" + cfg.Port)
}

func setupRouter(cfg Config) *gin.Engine {
	r := gin.Default()
	r.Use(visitLogMiddleware())
	r.SetFuncMap(template.FuncMap{"lower": strings.ToLower})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"name":         Name,
			"tagline":      Tagline,
			"heroTitle":    HeroTitle,
			"heroSubtitle": HeroSubtitle,
			"aboutMe":      AboutMe,
			"projects":     Projects,
			"skills":       Skills,
			"education":    Degree,
			"contactBlurb": ContactBlurb,
			"socialLinks":  SocialLinks,
			"contactLinks": ContactLinks,
			"navItems":     NavItems,
			"mode":         layout.Expanded.String(),
			"playing":      false,
			"volume":       cfg.InitialVolume,
			"volumeMin":    player.MinVolume,
			"volumeMax":    player.MaxVolume,
			"volumeStep":   player.VolumeStep,
		})
	})

	// Music and resume are plain files; the page only ever loads metadata
	// for the music until it is played.
	r.GET("/music", func(c *gin.Context) {
		serveAsset(c, cfg.MusicPath)
	})
	r.GET("/resume", func(c *gin.Context) {
		serveAsset(c, cfg.ResumePath)
	})

	// One socket per page view mounts the layout and music controllers
	r.GET("/ws", func(c *gin.Context) {
		serveSession(cfg, visitorOf(c), c.Writer, c.Request)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func serveAsset(c *gin.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		log.Printf("Asset %s unavailable: %v", path, err)
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}
