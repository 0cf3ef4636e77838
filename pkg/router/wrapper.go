package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/rewardengine/pkg/errorx"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

func route[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.log)
		ctx = xcontext.WithDB(ctx, r.db)

		ctx = serve(ctx, r, method, handler)
		handleResponse(ctx)

		for _, c := range r.closers {
			c(ctx)
		}
	}
}

func serve[Request, Response any](
	ctx context.Context, r *Router, method string, handler HandlerFunc[Request, Response],
) context.Context {
	req := xcontext.HTTPRequest(ctx)
	if req.Method != method {
		return xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Unsupported method %s", req.Method))
	}

	for _, m := range r.befores {
		newCtx, err := m(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	var request Request
	if err := parseRequest(req, method, &request); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
	}

	resp, err := handler(ctx, &request)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	ctx = xcontext.WithResponse(ctx, resp)
	for _, m := range r.afters {
		newCtx, err := m(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx
}

func parseRequest(req *http.Request, method string, v any) error {
	switch method {
	case http.MethodGet:
		values := map[string]any{}
		for k, vs := range req.URL.Query() {
			if len(vs) == 1 {
				values[k] = vs[0]
			} else {
				values[k] = vs
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           v,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(values)

	case http.MethodPost:
		err := json.NewDecoder(req.Body).Decode(v)
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}

	return errors.New("unsupported method")
}
