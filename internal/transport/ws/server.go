package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	persistlog "craftrpg.chat/internal/persistence/log"
	"craftrpg.chat/internal/persistence/userdb"
	"craftrpg.chat/internal/protocol"
	"craftrpg.chat/internal/sim/rpg"
)

// Server exposes the engine surface to the command collaborator: one
// request message in, one reply message out, synchronous per connection.
// The collaborator owns all chat-facing presentation.
type Server struct {
	store   *userdb.Store
	engine  *rpg.Engine
	journal *persistlog.ActivityJournal
	log     *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(store *userdb.Store, engine *rpg.Engine, journal *persistlog.ActivityJournal, logger *log.Logger) *Server {
	return &Server{
		store:   store,
		engine:  engine,
		journal: journal,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			reply := s.dispatch(r.Context(), raw)
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		}
	}
}

func (s *Server) dispatch(ctx context.Context, raw []byte) any {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return protocol.ErrorReply(protocol.Validation("malformed message"))
	}
	switch head.Type {
	case protocol.TypeAct:
		var msg protocol.ActMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return protocol.ErrorReply(protocol.Validation("malformed ACT message"))
		}
		return s.handleAct(ctx, msg)
	case protocol.TypeCatalog:
		var msg protocol.CatalogMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return protocol.ErrorReply(protocol.Validation("malformed CATALOG message"))
		}
		return s.handleCatalog(ctx, msg)
	case protocol.TypeUser:
		var msg protocol.UserMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			return protocol.ErrorReply(protocol.Validation("malformed USER message"))
		}
		return s.handleUser(ctx, msg)
	default:
		return protocol.ErrorReply(protocol.Validation("unknown message type: " + head.Type))
	}
}

func (s *Server) handleAct(ctx context.Context, msg protocol.ActMsg) any {
	if msg.UserID == "" {
		return protocol.ErrorReply(protocol.Validation("missing user_id"))
	}
	u, err := s.store.LoadUser(ctx, msg.UserID, msg.DisplayName)
	if err != nil {
		s.log.Printf("load user %s: %v", msg.UserID, err)
		return protocol.ErrorReply(err)
	}

	req := rpg.ActivityRequest{
		Activity:   msg.Activity,
		ToolUID:    msg.ToolUID,
		TargetID:   msg.TargetID,
		FuelUID:    msg.FuelUID,
		FurnaceUID: msg.FurnaceUID,
		Times:      msg.Times,
	}
	// The collaborator's food dropdown addresses instances; the engine
	// eats by id.
	if msg.FoodUID != "" {
		it := u.Inventory.FindByUID(msg.FoodUID)
		if it == nil {
			return protocol.ErrorReply(protocol.NotFound("no such food in inventory"))
		}
		req.TargetID = it.ID
	}

	res, err := s.engine.DoActivity(u, req)
	if err != nil {
		return protocol.ErrorReply(err)
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		s.log.Printf("save user %s: %v", msg.UserID, err)
		return protocol.ErrorReply(err)
	}

	reply := protocol.ResultMsg{
		Type:     protocol.TypeResult,
		Activity: res.Activity,
		Yield:    itemStacks(res.Yield),
		Consumed: itemStacks(res.Consumed),
		Restored: res.Restored,
	}
	if res.Furnace != nil {
		f := itemStack(res.Furnace)
		reply.Furnace = &f
	}
	if s.journal != nil {
		entry := persistlog.ActivityEntry{
			Time:     time.Now().UTC().Format(time.RFC3339Nano),
			UserID:   u.ID,
			Activity: res.Activity,
			Yield:    reply.Yield,
			Consumed: reply.Consumed,
		}
		if err := s.journal.WriteActivity(entry); err != nil {
			s.log.Printf("journal: %v", err)
		}
	}
	return reply
}

func (s *Server) handleCatalog(ctx context.Context, msg protocol.CatalogMsg) any {
	if msg.UserID == "" {
		return protocol.ErrorReply(protocol.Validation("missing user_id"))
	}
	u, err := s.store.LoadUser(ctx, msg.UserID, "")
	if err != nil {
		s.log.Printf("load user %s: %v", msg.UserID, err)
		return protocol.ErrorReply(err)
	}

	reply := protocol.CatalogResultMsg{Type: protocol.TypeCatalogResult, Query: msg.Query}
	switch msg.Query {
	case protocol.QueryGather:
		reply.Items = itemStacks(s.engine.PossibleGather(u))
	case protocol.QueryOre:
		reply.Items = itemStacks(s.engine.PossibleOre(u))
	case protocol.QueryCraft:
		reply.Items = itemStacks(s.engine.PossibleCraft(u))
	case protocol.QuerySmelt:
		reply.Items = itemStacks(s.engine.PossibleSmelt(u))
	case protocol.QueryFuel:
		for _, f := range s.engine.PossibleFuel(u) {
			reply.Fuels = append(reply.Fuels, protocol.FuelView{
				Item:        itemStack(f.Item),
				Temperature: f.Temperature,
				Duration:    f.Duration,
			})
		}
	case protocol.QueryRecipe:
		recipes, err := s.engine.Recipes(msg.ID)
		if err != nil {
			return protocol.ErrorReply(err)
		}
		for _, r := range recipes {
			reply.Recipes = append(reply.Recipes, recipeView(r))
		}
	default:
		return protocol.ErrorReply(protocol.Validation("unknown catalog query: " + msg.Query))
	}
	return reply
}

func (s *Server) handleUser(ctx context.Context, msg protocol.UserMsg) any {
	if msg.UserID == "" {
		return protocol.ErrorReply(protocol.Validation("missing user_id"))
	}
	u, err := s.store.LoadUser(ctx, msg.UserID, msg.DisplayName)
	if err != nil {
		s.log.Printf("load user %s: %v", msg.UserID, err)
		return protocol.ErrorReply(err)
	}

	state := protocol.UserStateMsg{
		Type:        protocol.TypeUserState,
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Position:    u.Position.Coordinate(),
		Saturation:  u.Health.Saturation,
		Health:      u.Health.Health,
		Deposit:     u.Finance.Deposit,
		Debt:        u.Finance.Debt,
		Inventory:   itemStacks(u.Inventory.Items()),
		Nutrients:   map[string]float64{},
	}
	for _, a := range u.Abilities.All() {
		state.Abilities = append(state.Abilities, protocol.AbilityView{
			Name:            a.Name,
			Experience:      a.Experience,
			Level:           a.Level(),
			UpgradeRequired: a.UpgradeRequired(),
		})
	}
	for name := range u.Health.Nutrient {
		state.Nutrients[name] = u.Health.NutrientLevel(name)
	}
	return state
}

func itemStacks(items []*rpg.Item) []protocol.ItemStack {
	out := make([]protocol.ItemStack, 0, len(items))
	for _, it := range items {
		out = append(out, itemStack(it))
	}
	return out
}

func itemStack(it *rpg.Item) protocol.ItemStack {
	st := protocol.ItemStack{
		ID:          it.ID,
		DisplayName: it.DisplayName,
		Amount:      it.Amount,
		UID:         it.UID,
	}
	if !it.Tag.IsEmpty() {
		tag := &protocol.ItemTag{
			Durability: it.Tag.Durability,
			Pending:    it.Tag.Pending,
		}
		for _, rc := range it.Tag.Result {
			tag.Result = append(tag.Result, protocol.ItemCount{ID: rc.ID, Amount: rc.Amount})
		}
		st.Tag = tag
	}
	return st
}

func recipeView(r rpg.Recipe) protocol.RecipeView {
	v := protocol.RecipeView{
		Result:      protocol.ItemCount{ID: r.Result.ID, Amount: r.Result.Amount},
		Temperature: r.Temperature,
		Duration:    r.Duration,
	}
	for _, ing := range r.Ingredients {
		v.Ingredients = append(v.Ingredients, protocol.ItemCount{ID: ing.ID, Amount: ing.Amount})
	}
	return v
}
