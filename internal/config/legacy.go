package config

import (
	"encoding/json"
	"fmt"
	"io"
)

type legacyBlobConnection struct {
	Host   *string `json:"host"`
	Port   *int    `json:"port"`
	Scheme *string `json:"scheme"`
	Token  *string `json:"token"`
	APIKey *string `json:"apiKey"`
}

type legacyBlob struct {
	Plex   *legacyBlobConnection `json:"plex"`
	Sonarr *legacyBlobConnection `json:"sonarr"`
	Radarr *legacyBlobConnection `json:"radarr"`
}

// ImportLegacy converts the dashboard's old browser-storage JSON blob
// ({plex:{host,port,token,scheme}, sonarr:{...,apiKey}, radarr:{...}})
// into a current-version config. Absent fields keep their defaults.
func ImportLegacy(r io.Reader) (*Config, error) {
	var blob legacyBlob
	if err := json.NewDecoder(r).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode legacy config: %w", err)
	}

	cfg := Default()
	apply := func(dst *Connection, src *legacyBlobConnection) {
		if src == nil {
			return
		}
		if src.Host != nil && *src.Host != "" {
			dst.Host = *src.Host
		}
		if src.Port != nil && *src.Port != 0 {
			dst.Port = *src.Port
		}
		if src.Scheme != nil && *src.Scheme != "" {
			dst.Scheme = *src.Scheme
		}
		if src.Token != nil {
			dst.Credential = *src.Token
		}
		if src.APIKey != nil {
			dst.Credential = *src.APIKey
		}
	}
	apply(&cfg.Connections.Plex, blob.Plex)
	apply(&cfg.Connections.Sonarr, blob.Sonarr)
	apply(&cfg.Connections.Radarr, blob.Radarr)

	return cfg, nil
}
