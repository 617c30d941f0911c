// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. Paths listed in server.public_paths
//     (health, metrics, swagger) are served without a key.
//   - rayid: assigns every request a ray id, stored in Locals("ray_id") and
//     echoed in the X-Ray-ID response header, so log lines can be correlated
//     through logger.WithRayID.
package middleware
