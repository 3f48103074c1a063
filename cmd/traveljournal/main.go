// Command traveljournal renders the travel journal page, either once to a
// file or stdout, or on every request from an HTTP server.
package main

func main() {
	Execute()
}
