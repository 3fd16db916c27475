// Command plexdeck is the command-line client for plexdeckd.
package main

func main() {
	Execute()
}
