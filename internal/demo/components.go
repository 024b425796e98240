package demo

import (
	"fmt"

	"github.com/AnatoleLucet/shared"
	"github.com/AnatoleLucet/shared/host"
)

const (
	EventIncrement = "increment"
	EventSetUser   = "set-user"
)

func CounterDisplay(useCounter shared.Hook[int]) host.Component {
	return func() string {
		counter, _ := useCounter()
		return fmt.Sprintf("Value in counter display component: %d", counter)
	}
}

func CounterIncrementer(r *host.Root, useCounter shared.Hook[int]) host.Component {
	return func() string {
		counter, setCounter := useCounter()

		r.UseEvent(EventIncrement, func(string) {
			setCounter.Update(func(old int) int { return old + 1 })
		})

		return fmt.Sprintf("Counter value in incrementer component: %d\n[Increment Counter]", counter)
	}
}

func LoggedInUserDisplay(useUser shared.Hook[string]) host.Component {
	return func() string {
		user, _ := useUser()
		return fmt.Sprintf("Logged in user value in display component: %s", user)
	}
}

func LoggedInUserSetter(r *host.Root, useUser shared.Hook[string]) host.Component {
	return func() string {
		_, setUser := useUser()

		r.UseEvent(EventSetUser, func(name string) {
			setUser.Set(name)
		})

		return "Set logged in user name: [input]"
	}
}
