package server

import (
	"errors"
	"net/http"

	"github.com/km-arc/go-fixture/framework/catalog"
	fxerrors "github.com/km-arc/go-fixture/framework/errors"
	gohttp "github.com/km-arc/go-fixture/framework/http"
	"github.com/km-arc/go-fixture/framework/serializer"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFixtures(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(s.catalog.Names())
}

func (s *Server) handleListTags(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(s.catalog.Tags())
}

func (s *Server) handleShowFixture(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	format, err := req.Format()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fxerrors.Wrap(fxerrors.ErrCodeInvalidRequest, "bad format", err))
		return
	}

	v, err := s.catalog.Make(req.RouteParam("name"))
	if err != nil {
		s.writeBuildError(w, r, err)
		return
	}
	s.writeFixture(w, r, format, v)
}

func (s *Server) handleShowTag(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	format, err := req.Format()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fxerrors.Wrap(fxerrors.ErrCodeInvalidRequest, "bad format", err))
		return
	}

	v, err := s.catalog.Tagged(req.RouteParam("tag"))
	if err != nil {
		s.writeBuildError(w, r, err)
		return
	}
	s.writeFixture(w, r, format, v)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, fxerrors.New(fxerrors.ErrCodeNotFound, "no route for "+r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed,
		fxerrors.New(fxerrors.ErrCodeInvalidRequest, r.Method+" not allowed on "+r.URL.Path))
}

// ── Error mapping ─────────────────────────────────────────────────────────────

// writeBuildError maps a catalog failure to a status: unknown names are 404,
// everything else failed during construction and is 422.
func (s *Server) writeBuildError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, catalog.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		fixtureBuildFailures.WithLabelValues(string(fxerrors.CodeOf(err))).Inc()
		s.logger.Warn("fixture build failed", "requestID", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	s.writeError(w, r, status, err)
}

func (s *Server) writeFixture(w http.ResponseWriter, r *http.Request, format serializer.Format, v any) {
	if err := gohttp.NewResponse(w).Fixture(format, v); err != nil {
		s.logger.Error("fixture serialization failed", "requestID", RequestID(r.Context()), "error", err)
		s.writeError(w, r, http.StatusInternalServerError,
			fxerrors.Wrap(fxerrors.ErrCodeInternal, "fixture cannot be rendered as "+string(format), err))
	}
}

// writeError renders err as {"code","message","requestId"}. Structured errors
// contribute their message without the code prefix; anything else is sent as is.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	message := err.Error()
	var se *fxerrors.StructuredError
	if errors.As(err, &se) && se.Cause == nil {
		message = se.Message
	}
	gohttp.NewResponse(w).Error(status, string(fxerrors.CodeOf(err)), message, RequestID(r.Context()))
}
