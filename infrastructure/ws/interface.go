package ws

type IHub interface {
	Run()
	RegisterClient(client *UserClient)
	UnregisterClient(client *UserClient)
	Join(client *UserClient, room string)
	Leave(client *UserClient, room string)
	PublishToRoom(room string, message []byte)
	SendToClient(client *UserClient, message []byte)
	GetClientCount() int
	SetOnClientUnregister(callback func(client *UserClient) error)
}
