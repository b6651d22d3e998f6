package discovery

import (
	"fmt"
	"log"
	"strconv"

	"assessment-service/internal/config"

	"github.com/hashicorp/consul/api"
)

// ServiceRegistry registers the HTTP endpoint with Consul so the gateway
// can route to it. Deregister on shutdown.
type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

func NewServiceRegistry(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.Consul.Address

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}
	return &ServiceRegistry{client: client, config: cfg}, nil
}

func (sr *ServiceRegistry) Register() error {
	httpPort, _ := strconv.Atoi(sr.config.Server.Port)

	registration := &api.AgentServiceRegistration{
		ID:      sr.config.Server.ServiceID + "-http",
		Name:    sr.config.Server.ServiceName,
		Port:    httpPort,
		Address: sr.config.Server.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.Server.ServiceAddress, sr.config.Server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"quiz", "assessment", "http"},
		Meta: map[string]string{
			"protocol": "http",
		},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with Consul: %w", err)
	}
	log.Printf("Registered %s with Consul", registration.ID)
	return nil
}

func (sr *ServiceRegistry) Deregister() {
	id := sr.config.Server.ServiceID + "-http"
	if err := sr.client.Agent().ServiceDeregister(id); err != nil {
		log.Printf("Failed to deregister %s: %v", id, err)
	}
}
