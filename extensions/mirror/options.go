package mirror

import "github.com/sirupsen/logrus"

type Option func(*Server)

// WithRoot serves files below dir instead of the working directory.
func WithRoot(dir string) Option {
	return func(server *Server) {
		server.root = dir
	}
}

// WithTranslator replaces the default colon rewriting.
func WithTranslator(translator Translator) Option {
	return func(server *Server) {
		server.translator = translator
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(server *Server) {
		server.logger = logger
	}
}
