package cmd

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

type TunnelConfig struct {
	SSHUser        string
	SSHHost        string
	SSHPort        string
	RemoteHost     string
	RemotePort     string
	LocalPort      string
	PrivateKeyPath string
}

var tunnelCfg TunnelConfig

var sshTunnelCmd = &cobra.Command{
	Use:   "ssh-tunnel",
	Short: "Open a local tunnel to the roster database through a bastion host",
	Long:  `Forwards a local port to the roster database through an SSH bastion, for running migrations or psql sessions against a private database.`,
	Run: func(cmd *cobra.Command, args []string) {
		setLogging(logLevel)

		if err := StartSSHTunnel(&tunnelCfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to start SSH tunnel")
		}
	},
}

func init() {
	rootCmd.AddCommand(sshTunnelCmd)
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.SSHUser, "ssh-user", "ec2-user", "user on the bastion host")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.SSHHost, "ssh-host", "", "bastion host to tunnel through")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.SSHPort, "ssh-port", "22", "SSH port on the bastion host")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.RemoteHost, "remote-host", "", "roster database host")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.RemotePort, "remote-port", "5432", "roster database port")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.LocalPort, "local-port", "5432", "local port to listen on")
	sshTunnelCmd.Flags().StringVar(&tunnelCfg.PrivateKeyPath, "key", "", "path to the SSH private key")
	sshTunnelCmd.MarkFlagRequired("ssh-host")
	sshTunnelCmd.MarkFlagRequired("remote-host")
	sshTunnelCmd.MarkFlagRequired("key")
}

// SSHClient creates a new SSH client
func SSHClient(config TunnelConfig) (*ssh.Client, error) {
	key, err := os.ReadFile(config.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	// Define the SSH client configuration
	sshConfig := &ssh.ClientConfig{
		User: config.SSHUser,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // Don't verify host key (not recommended for production)
		Timeout:         5 * time.Second,             // Connection timeout
	}

	// Connect to the SSH server
	client, err := ssh.Dial("tcp", config.SSHHost+":"+config.SSHPort, sshConfig)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// ForwardTraffic forwards traffic from local to remote host
func ForwardTraffic(localListener net.Listener, client *ssh.Client, config TunnelConfig) {
	for {
		localConn, err := localListener.Accept() // Accept local connection
		if err != nil {
			log.Error().Err(err).Msg("Failed to accept local connection")
			continue
		}

		// Open a connection to the remote host
		remoteConn, err := client.Dial("tcp", config.RemoteHost+":"+config.RemotePort)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to remote host")
			localConn.Close()
			continue
		}

		// Forward data between local and remote connections
		go func() {
			defer localConn.Close()
			defer remoteConn.Close()

			// Forward local to remote
			go io.Copy(remoteConn, localConn)
			// Forward remote to local
			io.Copy(localConn, remoteConn)
		}()
	}
}

// StartSSHTunnel initializes the SSH tunnel and forwards traffic
func StartSSHTunnel(config *TunnelConfig) error {
	// Create an SSH client
	client, err := SSHClient(*config)
	if err != nil {
		return err
	}
	defer client.Close()

	// Listen on the local port
	localListener, err := net.Listen("tcp", "localhost:"+config.LocalPort)
	if err != nil {
		return err
	}
	defer localListener.Close()

	log.Info().Msgf("SSH tunnel started on localhost:%s forwarding to %s:%s", config.LocalPort, config.RemoteHost, config.RemotePort)

	// Forward the traffic between local and remote
	ForwardTraffic(localListener, client, *config)

	return nil
}
