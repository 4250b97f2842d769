package backend

import (
	"context"
	"strconv"

	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Video/voice provider configuration CRUD. The backend's route names are
// uneven (note the misspelled update path); that quirk stays confined to
// this file.

func (c *Client) ListProviderConfigs(ctx context.Context) ([]models.ProviderConfig, Result) {
	res := c.Get(ctx, "/agora_config", nil)
	if !res.Success {
		return nil, res
	}

	var configs []models.ProviderConfig
	if err := res.Decode(&configs); err != nil {
		res.Success = false
		res.Message = "unexpected provider config payload"
		return nil, res
	}
	return configs, res
}

func (c *Client) GetProviderConfig(ctx context.Context, id int64) (*models.ProviderConfig, Result) {
	res := c.Get(ctx, "/agora_config_list/"+strconv.FormatInt(id, 10), nil)
	if !res.Success {
		return nil, res
	}

	var cfg models.ProviderConfig
	if err := res.Decode(&cfg); err != nil {
		res.Success = false
		res.Message = "unexpected provider config payload"
		return nil, res
	}
	return &cfg, res
}

func (c *Client) CreateProviderConfig(ctx context.Context, cfg models.ProviderConfig) Result {
	return c.PostJSON(ctx, "/agora_config", cfg)
}

func (c *Client) UpdateProviderConfig(ctx context.Context, id int64, cfg models.ProviderConfig) Result {
	// "upadte" is the backend's spelling
	return c.PutJSON(ctx, "/agora_config_upadte/"+strconv.FormatInt(id, 10), cfg)
}

func (c *Client) DeleteProviderConfig(ctx context.Context, id int64) Result {
	return c.Delete(ctx, "/agora_config_del/"+strconv.FormatInt(id, 10), nil)
}
