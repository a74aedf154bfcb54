package config

import (
	"time"

	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("InstanceName").Return("projects/p/instances/i")
	o.On("SupportedOperations").Return(TableCreate | FamilyModify)
	o.On("OperationPollInterval").Return(time.Millisecond)
	o.On("Naming").Return(NewDefaultNaming())
	o.On("UseUserOrRoleAuth").Return(false)
	o.On("Logger").Return(log.NewZapLogger(zap.NewExample()))
	return o
}

func (o *ConfigMock) InstanceName() string {
	args := o.Called()
	return args.String(0)
}

func (o *ConfigMock) SupportedOperations() SchemaOperations {
	args := o.Called()
	return args.Get(0).(SchemaOperations)
}

func (o *ConfigMock) OperationPollInterval() time.Duration {
	args := o.Called()
	return args.Get(0).(time.Duration)
}

func (o *ConfigMock) Naming() NamingConvention {
	args := o.Called()
	return args.Get(0).(NamingConvention)
}

func (o *ConfigMock) UseUserOrRoleAuth() bool {
	args := o.Called()
	return args.Bool(0)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
