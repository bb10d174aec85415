/*
Package wardensdk holds the wire types of the warden HTTP API together with a small client.

The server encodes these types directly, so a client built on this package always matches the
deployed schema.

	client := wardensdk.NewClient("https://warden.example.com")

	session, err := client.Login(ctx, "alice", "s3cret-pass1")
	me, err := session.Me(ctx)

A Session refreshes its access token through POST /auth/refresh-token shortly before it
expires. Every refresh rotates the refresh token, so a Session must not be copied between
goroutines that log out independently.
*/
package wardensdk
