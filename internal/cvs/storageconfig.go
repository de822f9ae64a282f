package cvs

import "context"

// KMSConfigs lists KMS configurations in a region ("-" for all regions).
func (c *Client) KMSConfigs(ctx context.Context, region string) ([]KMSConfig, error) {
	var cfgs []KMSConfig
	err := c.get(ctx, region, "Storage/KmsConfig", &cfgs)
	return cfgs, err
}

// KMSConfigByID fetches one KMS configuration.
func (c *Client) KMSConfigByID(ctx context.Context, region, configID string) (KMSConfig, error) {
	var cfg KMSConfig
	err := c.get(ctx, region, "Storage/KmsConfig/"+configID, &cfg)
	return cfg, err
}

// DeleteKMSConfig deletes a KMS configuration.
func (c *Client) DeleteKMSConfig(ctx context.Context, region, configID string) error {
	_, err := c.delete(ctx, region, "Storage/KmsConfig/"+configID)
	return err
}

// ActiveDirectoryConfigs lists AD configurations in a region.
func (c *Client) ActiveDirectoryConfigs(ctx context.Context, region string) ([]ADConfig, error) {
	var cfgs []ADConfig
	err := c.get(ctx, region, "Storage/ActiveDirectory", &cfgs)
	return cfgs, err
}

// ActiveDirectoryConfigByID fetches one AD configuration.
func (c *Client) ActiveDirectoryConfigByID(ctx context.Context, region, configID string) (ADConfig, error) {
	var cfg ADConfig
	err := c.get(ctx, region, "Storage/ActiveDirectory/"+configID, &cfg)
	return cfg, err
}
