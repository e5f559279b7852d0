// Package config loads brainstorm settings.
//
// # Resolution Order
//
// Later sources win:
//
//  1. Built-in defaults (openai provider, gpt-4o-mini, five ideas per batch)
//  2. ~/.config/brainstorm/config.toml, or the path passed to Load
//  3. A .env file in the working directory
//  4. BRAINSTORM_* environment variables (OPENAI_API_KEY and OLLAMA_HOST as fallbacks)
//
// Command-line flags are layered on top by cmd/brainstorm.
//
// # TOML Format
//
//	provider = "ollama"
//	model = "llama3.2:latest"
//	base_url = "http://localhost:11434"
//	batch_size = 5
//	timeout_seconds = 60
//	export_path = "~/ideas.md"
//	log_file = "~/.local/state/brainstorm.log"
//
// Every key is optional. Missing config files are not an error.
package config
