package remote

// Config holds configuration for the distributor SFTP drop.
type Config struct {
	// Host is the SFTP server host.
	Host string `mapstructure:"host" default:""`
	// Port is the SFTP server port.
	Port int `mapstructure:"port" default:"22"`
	// User is the SFTP username.
	User string `mapstructure:"user" default:""`
	// Password is the SFTP password. Ignored when PrivateKeyPath is set.
	Password string `mapstructure:"password" default:""`
	// PrivateKeyPath is an optional path to a PEM private key for auth.
	PrivateKeyPath string `mapstructure:"private_key_path" default:""`
	// RemotePath is the fixed path of the inventory file on the server.
	RemotePath string `mapstructure:"remote_path" default:"/outbound/inventory.csv"`
	// Delimiter is the field delimiter used in the inventory file.
	Delimiter string `mapstructure:"delimiter" default:","`
	// TimeoutSeconds is the TCP and SSH handshake timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
