package integrators

import "github.com/san-kum/dopsim/internal/dynamo"

type observers struct {
	list []dynamo.Observer
}

// AddObserver registers o to be notified of every accepted state.
func (o *observers) AddObserver(obs dynamo.Observer) {
	o.list = append(o.list, obs)
}

func (o *observers) notify(x dynamo.TimeVector) {
	for _, obs := range o.list {
		obs.OnStep(x)
	}
}
