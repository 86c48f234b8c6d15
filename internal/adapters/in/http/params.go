package http

import (
	"net/url"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(name, value string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, value, &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parseUUID(name, raw)
}

func pathTrackingCode(name, value string) (kernel.TrackingCode, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, value, &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.TrackingCodeFromString(raw)
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// query binds one optional form-style query parameter.
func query[T any](params url.Values, name string) (*T, error) {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, params, &v); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryUUID(params url.Values, name string) (*kernel.UUID, error) {
	raw, err := query[string](params, name)
	if err != nil || raw == nil {
		return nil, err
	}
	id, err := parseUUID(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryDay binds a YYYY-MM-DD parameter as midnight UTC.
func queryDay(params url.Values, name string) (*time.Time, error) {
	d, err := query[openapi_types.Date](params, name)
	if err != nil || d == nil {
		return nil, err
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}

func queryString(params url.Values, name string) (string, error) {
	s, err := query[string](params, name)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

func pagination(params url.Values) (queries.Pagination, error) {
	page, err := query[int](params, "page")
	if err != nil {
		return queries.Pagination{}, err
	}
	size, err := query[int](params, "size")
	if err != nil {
		return queries.Pagination{}, err
	}
	return queries.NewPagination(deref(page), deref(size))
}

func routeFilters(params url.Values) (queries.RouteFilters, error) {
	var f queries.RouteFilters
	state, err := queryString(params, "state")
	if err != nil {
		return f, err
	}
	if state != "" {
		s, err := route.ParseState(state)
		if err != nil {
			return f, err
		}
		f.State = &s
	}
	if f.CarrierID, err = queryUUID(params, "carrierId"); err != nil {
		return f, err
	}
	if f.VehicleID, err = queryUUID(params, "vehicleId"); err != nil {
		return f, err
	}
	if f.StartedOn, err = queryDay(params, "startedOn"); err != nil {
		return f, err
	}
	if f.FinishedOn, err = queryDay(params, "finishedOn"); err != nil {
		return f, err
	}
	f.Search, err = queryString(params, "search")
	return f, err
}

func shipmentFilters(params url.Values) (queries.ShipmentFilters, error) {
	var f queries.ShipmentFilters
	status, err := queryString(params, "status")
	if err != nil {
		return f, err
	}
	if status != "" {
		s, err := shipment.StatusFromLabel(status)
		if err != nil {
			return f, err
		}
		f.Status = &s
	}
	if f.CarrierID, err = queryUUID(params, "carrierId"); err != nil {
		return f, err
	}
	if f.CreatedFrom, err = query[time.Time](params, "createdFrom"); err != nil {
		return f, err
	}
	if f.CreatedTo, err = query[time.Time](params, "createdTo"); err != nil {
		return f, err
	}
	f.Search, err = queryString(params, "search")
	return f, err
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
