// Package runtime manages the long running services of a process: the
// metrics endpoint and the devnet block producer are started and stopped
// together through a ServiceRegistry.
package runtime

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "registry")

// Service is a struct that can be registered into a ServiceRegistry for
// easy dependency management.
type Service interface {
	// Start spawns any goroutines required by the service.
	Start()
	// Stop terminates all goroutines belonging to the service,
	// blocking until they are all terminated.
	Stop() error
	// Status returns error if the service is not considered healthy.
	Status() error
}

// ServiceStatus is the health of one registered service.
type ServiceStatus struct {
	Name string
	Err  error
}

// ServiceRegistry holds one service per concrete type, started in
// registration order and stopped in reverse.
type ServiceRegistry struct {
	services     map[reflect.Type]Service
	serviceTypes []reflect.Type
}

// NewServiceRegistry returns an empty registry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[reflect.Type]Service),
	}
}

// StartAll starts each service in order of registration.
func (s *ServiceRegistry) StartAll() {
	log.Debugf("Starting %d services: %v", len(s.serviceTypes), s.serviceTypes)
	for _, kind := range s.serviceTypes {
		log.Debugf("Starting service type %v", kind)
		go s.services[kind].Start()
	}
}

// StopAll stops every service in reverse order of registration. All services
// are stopped even if some fail; the first failure is returned.
func (s *ServiceRegistry) StopAll() error {
	var firstErr error
	for i := len(s.serviceTypes) - 1; i >= 0; i-- {
		kind := s.serviceTypes[i]
		if err := s.services[kind].Stop(); err != nil {
			log.WithError(err).Errorf("Could not stop the following service: %v", kind)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "could not stop %v", kind)
			}
		}
	}
	return firstErr
}

// Statuses returns a map of Service type -> error. The map will be populated
// with the results of each service.Status() method call.
func (s *ServiceRegistry) Statuses() map[reflect.Type]error {
	m := make(map[reflect.Type]error, len(s.serviceTypes))
	for _, kind := range s.serviceTypes {
		m[kind] = s.services[kind].Status()
	}
	return m
}

// Report returns the status of every service in registration order.
func (s *ServiceRegistry) Report() []ServiceStatus {
	report := make([]ServiceStatus, 0, len(s.serviceTypes))
	for _, kind := range s.serviceTypes {
		report = append(report, ServiceStatus{
			Name: kind.String(),
			Err:  s.services[kind].Status(),
		})
	}
	return report
}

// RegisterService adds a service to the registry. Only one service of each
// concrete type may be registered.
func (s *ServiceRegistry) RegisterService(service Service) error {
	if service == nil {
		return errors.New("cannot register nil service")
	}
	kind := reflect.TypeOf(service)
	if _, exists := s.services[kind]; exists {
		return errors.Errorf("service already exists: %v", kind)
	}
	s.services[kind] = service
	s.serviceTypes = append(s.serviceTypes, kind)
	return nil
}

// FetchService takes in a struct pointer and sets the value of that pointer
// to a service currently stored in the service registry. This ensures the input argument is
// set to the right pointer that refers to the originally registered service.
func (s *ServiceRegistry) FetchService(service interface{}) error {
	if reflect.TypeOf(service).Kind() != reflect.Ptr {
		return errors.Errorf("input must be of pointer type, received value type instead: %T", service)
	}
	element := reflect.ValueOf(service).Elem()
	if running, ok := s.services[element.Type()]; ok {
		element.Set(reflect.ValueOf(running))
		return nil
	}
	return errors.Errorf("unknown service: %T", service)
}
