// Package httpapp provides the HTTP server for AlumniConnect.
//
// Routes are grouped by the roles allowed to call them. A gated route
// resolves the bearer token to an auth.Identity before the handler runs:
//
//	/user/*, /view/*, /create/post, /like, /save, /comment, /notifications  user
//	/admin/*                                                                admin
//	/content/*                                                              user or admin
//
// Errors are returned as {"error": "<message>"} with a status derived from
// the service sentinel errors. GET /socket upgrades to a websocket that
// receives post_created and post_deleted frames.
package httpapp
