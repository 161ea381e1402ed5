// Package apperror defines the stable error kinds surfaced by the matching core.
//
// Every failure that crosses a component boundary is tagged with a Kind so that
// callers (HTTP handlers, CLI commands) can map it to a status code without
// string-matching on error text. Errors created here support errors.Is against
// the exported sentinels and errors.As for extracting detail.
//
// # Usage
//
//	if errors.Is(err, apperror.ErrFilterNotFound) {
//	    return c.Status(fiber.StatusNotFound).JSON(...)
//	}
//
//	return nil, apperror.Wrap(apperror.KindExternalFetch, err, "fetch organizations for filter %s", id)
package apperror
