package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/abossard/functions-quickstart-go-http-azd/pkg/logging"
)

var _ = Describe("Setup", func() {
	var buf *bytes.Buffer

	setup := func(name string) *slog.Logger {
		return logging.Setup(name, logging.WithWriter(buf))
	}

	BeforeEach(func() {
		logging.Reset()
		buf = &bytes.Buffer{}
	})

	AfterEach(func() {
		for _, key := range []string{
			"LOG_LEVEL", "LOG_FORMAT", "LOG_DATE_FORMAT",
			"LOGLEVEL_HTTP_CLIENT", "LOGLEVEL_AZURE_CORE",
			"LOGLEVEL_AZURE_STORAGE_BLOB", "LOGLEVEL_",
		} {
			os.Unsetenv(key)
		}
		logging.Reset()
	})

	It("returns a logger that logs under the given name", func() {
		log := setup("functions")
		log.Info("processing request")

		Expect(buf.String()).To(ContainSubstring("[I] functions: processing request"))
	})

	It("appends structured attributes as key=value pairs", func() {
		log := setup("functions")
		log.Info("greeting", slog.String("name", "World"))

		Expect(buf.String()).To(ContainSubstring("greeting name=World"))
	})

	Context("root level", func() {
		It("suppresses debug messages by default", func() {
			log := setup("functions")
			log.Debug("noisy detail")

			Expect(buf.String()).To(BeEmpty())
		})

		It("emits debug messages when LOG_LEVEL=DEBUG", func() {
			os.Setenv("LOG_LEVEL", "DEBUG")

			log := setup("functions")
			log.Debug("noisy detail")

			Expect(buf.String()).To(ContainSubstring("[D] functions: noisy detail"))
		})

		It("accepts LOG_LEVEL case-insensitively", func() {
			os.Setenv("LOG_LEVEL", "warning")

			log := setup("functions")
			log.Info("dropped")
			log.Warn("kept")

			Expect(buf.String()).NotTo(ContainSubstring("dropped"))
			Expect(buf.String()).To(ContainSubstring("kept"))
		})

		It("warns and defaults to INFO on an invalid LOG_LEVEL", func() {
			os.Setenv("LOG_LEVEL", "chatty")

			log := setup("functions")
			log.Info("still here")

			Expect(buf.String()).To(ContainSubstring("invalid LOG_LEVEL"))
			Expect(buf.String()).To(ContainSubstring("still here"))
		})
	})

	Context("output format", func() {
		It("honors LOG_FORMAT", func() {
			os.Setenv("LOG_FORMAT", "${levelname} ${name} :: ${message}")

			log := setup("functions")
			log.Info("formatted")

			Expect(buf.String()).To(ContainSubstring("INFO functions :: formatted"))
		})

		It("honors LOG_DATE_FORMAT", func() {
			// "@" is not a layout element, so it renders literally.
			os.Setenv("LOG_DATE_FORMAT", "@")

			log := setup("functions")
			log.Info("stamped")

			Expect(buf.String()).To(HavePrefix("@ [I]"))
		})

		It("falls back to the default format on an unparseable template", func() {
			os.Setenv("LOG_FORMAT", "${message")

			log := setup("functions")
			log.Info("survived")

			Expect(buf.String()).To(ContainSubstring("invalid LOG_FORMAT"))
			Expect(buf.String()).To(ContainSubstring("[I] functions: survived"))
		})
	})

	Context("baseline suppressions", func() {
		It("clamps noisy subsystem loggers to WARNING", func() {
			setup("functions")

			noisy := logging.Logger("http.client")
			noisy.Info("request started")
			noisy.Warn("request failed")

			Expect(buf.String()).NotTo(ContainSubstring("request started"))
			Expect(buf.String()).To(ContainSubstring("request failed"))
		})

		It("applies to child loggers through the dot hierarchy", func() {
			setup("functions")

			child := logging.Logger("azure.core.pipeline")
			child.Info("dropped")
			child.Warn("kept")

			Expect(buf.String()).NotTo(ContainSubstring("dropped"))
			Expect(buf.String()).To(ContainSubstring("kept"))
		})

		It("merges extra suppressions from WithNoisyLoggers", func() {
			log := logging.Setup("functions",
				logging.WithWriter(buf),
				logging.WithNoisyLoggers(map[string]slog.Level{"chatty.dep": slog.LevelError}))
			log.Info("app message")

			dep := logging.Logger("chatty.dep")
			dep.Warn("dropped")
			dep.Error("kept")

			Expect(buf.String()).NotTo(ContainSubstring("dropped"))
			Expect(buf.String()).To(ContainSubstring("kept"))
		})
	})

	Context("LOGLEVEL_ environment overrides", func() {
		It("maps variable names to dotted, lower-cased logger names", func() {
			os.Setenv("LOGLEVEL_AZURE_STORAGE_BLOB", "ERROR")

			setup("functions")

			blob := logging.Logger("azure.storage.blob")
			blob.Warn("dropped")
			blob.Error("kept")

			Expect(buf.String()).NotTo(ContainSubstring("dropped"))
			Expect(buf.String()).To(ContainSubstring("kept"))
		})

		It("accepts levels case-insensitively", func() {
			os.Setenv("LOGLEVEL_AZURE_CORE", "Debug")
			os.Setenv("LOG_LEVEL", "DEBUG")

			setup("functions")

			logging.Logger("azure.core").Debug("verbose core")

			Expect(buf.String()).To(ContainSubstring("azure.core: verbose core"))
		})

		It("wins over the baseline suppression", func() {
			os.Setenv("LOGLEVEL_HTTP_CLIENT", "DEBUG")
			os.Setenv("LOG_LEVEL", "DEBUG")

			setup("functions")

			logging.Logger("http.client").Debug("wire detail")

			Expect(buf.String()).To(ContainSubstring("http.client: wire detail"))
		})

		It("skips invalid levels and keeps the baseline", func() {
			os.Setenv("LOGLEVEL_AZURE_CORE", "chatty")

			setup("functions")

			core := logging.Logger("azure.core")
			core.Info("dropped")
			core.Warn("kept")

			Expect(buf.String()).To(ContainSubstring("LOGLEVEL_AZURE_CORE"))
			Expect(buf.String()).NotTo(ContainSubstring("dropped"))
			Expect(buf.String()).To(ContainSubstring("kept"))
		})

		It("warns when the variable carries no logger name", func() {
			os.Setenv("LOGLEVEL_", "debug")

			setup("functions")

			Expect(buf.String()).To(ContainSubstring("no logger name"))
		})
	})

	Context("idempotence", func() {
		It("does not duplicate the sink on a second call", func() {
			setup("functions")
			log := setup("functions")

			log.Info("exactly once")

			Expect(strings.Count(buf.String(), "exactly once")).To(Equal(1))
		})

		It("ignores options passed to the second call", func() {
			setup("functions")

			other := &bytes.Buffer{}
			log := logging.Setup("functions", logging.WithWriter(other))
			log.Info("routed")

			Expect(other.String()).To(BeEmpty())
			Expect(buf.String()).To(ContainSubstring("routed"))
		})
	})

	Context("explicit options", func() {
		It("prefers WithLevel over LOG_LEVEL", func() {
			os.Setenv("LOG_LEVEL", "ERROR")

			log := logging.Setup("functions",
				logging.WithWriter(buf),
				logging.WithLevel(slog.LevelDebug))
			log.Debug("opted in")

			Expect(buf.String()).To(ContainSubstring("opted in"))
		})
	})
})

var _ = Describe("Logger", func() {
	AfterEach(func() {
		logging.Reset()
	})

	It("returns a usable logger before Setup has run", func() {
		logging.Reset()
		Expect(logging.Logger("early")).NotTo(BeNil())
	})
})

var _ = Describe("SetLevel", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		logging.Reset()
		buf = &bytes.Buffer{}
		logging.Setup("functions", logging.WithWriter(buf))
	})

	AfterEach(func() {
		logging.Reset()
	})

	It("adjusts a logger threshold at runtime", func() {
		logging.SetLevel("uploads", slog.LevelError)

		up := logging.Logger("uploads")
		up.Info("dropped")
		up.Error("kept")

		Expect(buf.String()).NotTo(ContainSubstring("dropped"))
		Expect(buf.String()).To(ContainSubstring("kept"))
	})
})

var _ = Describe("ParseLevel", func() {
	It("parses every valid level case-insensitively", func() {
		for name, want := range map[string]slog.Level{
			"DEBUG":    slog.LevelDebug,
			"debug":    slog.LevelDebug,
			"Info":     slog.LevelInfo,
			"WARNING":  slog.LevelWarn,
			"warning":  slog.LevelWarn,
			"error":    slog.LevelError,
			"CRITICAL": logging.LevelCritical,
			" info ":   slog.LevelInfo,
		} {
			got, err := logging.ParseLevel(name)
			Expect(err).NotTo(HaveOccurred(), "level %q", name)
			Expect(got).To(Equal(want), "level %q", name)
		}
	})

	It("rejects unknown names", func() {
		for _, name := range []string{"", "TRACE", "warn", "41"} {
			_, err := logging.ParseLevel(name)
			Expect(err).To(HaveOccurred(), "level %q", name)
		}
	})
})
